package refresh

import "time"

// Container is the scrollable host a Controller drives.
//
// ScrollY is the signed offset past the content boundary: negative past the
// start, positive past the end.
type Container interface {
	ScrollY() int
	ScrollBy(dy int)
	ScrollTo(y int)

	// CanOverscroll reports whether the content overflows the viewport, in
	// which case the container's own overscroll handling applies and the
	// controller does not simulate it.
	CanOverscroll() bool

	// CancelTouch injects a cancel into the active touch stream. Hosts
	// usually route it back to Controller.OnPointerCancel.
	CancelTouch()

	// PostDelayed runs fn on the UI loop after d.
	PostDelayed(d time.Duration, fn func())
}

// Listener is told when a refresh starts and completes.
type Listener interface {
	OnRefreshStart(edge Mode)
	OnRefreshComplete()
}

// Indicator is the visual collaborator following the pull.
type Indicator interface {
	SetPulling(pulling bool)
	OnPulled(fraction float64)
	OnRefreshStart()
	OnRefreshComplete()
}
