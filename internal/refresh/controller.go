// Package refresh implements pull-to-refresh gesture handling for a
// scrollable container: dragging past a content edge commits a refresh,
// releasing springs the offset back, and listeners follow the lifecycle.
//
// All methods must be called from the host's UI loop. Nothing here locks.
package refresh

import (
	"fmt"
	"log/slog"
	"math"
)

// Phase is the refresh state of a single edge.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePulling
	PhaseCommitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePulling:
		return "pulling"
	case PhaseCommitted:
		return "committed"
	}
	return "unknown"
}

// refreshState records which edges have a committed refresh. Both edges
// may be refreshing at once.
type refreshState struct {
	start bool
	end   bool
}

func (s *refreshState) set(mode Mode, refreshing bool) {
	if mode.HasStart() {
		s.start = refreshing
	}
	if mode.HasEnd() {
		s.end = refreshing
	}
}

func (s refreshState) get(mode Mode) bool {
	return (mode.HasStart() && s.start) || (mode.HasEnd() && s.end)
}

func (s refreshState) mode() Mode {
	var m Mode
	if s.start {
		m |= ModeStart
	}
	if s.end {
		m |= ModeEnd
	}
	return m
}

// Controller is the pull-to-refresh state machine for one container.
type Controller struct {
	container Container
	tracker   *Tracker
	spring    *SpringBack
	state     refreshState
	mode      Mode

	listener  Listener
	indicator Indicator
	logger    *slog.Logger
}

// New creates a controller for a container.
func New(c Container, cfg Config) (*Controller, error) {
	if c == nil {
		return nil, fmt.Errorf("container is nil: %w", ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tracker, err := NewTracker(cfg.MaxOverscrollDistance())
	if err != nil {
		return nil, err
	}
	ctl := &Controller{
		container: c,
		tracker:   tracker,
		mode:      ModeBoth,
		logger:    slog.Default(),
	}
	ctl.spring = NewSpringBack(c, newSpringDecay(cfg.Frame, cfg.SpringFrequency, cfg.SpringDamping), cfg.Frame)
	ctl.spring.onDone = func() {
		ctl.logger.Debug("spring-back finished")
	}
	return ctl, nil
}

// Bind creates a controller for a host view that must implement Container.
func Bind(view any, cfg Config) (*Controller, error) {
	c, ok := view.(Container)
	if !ok {
		return nil, fmt.Errorf("view %T does not implement refresh.Container: %w", view, ErrInvalidArgument)
	}
	return New(c, cfg)
}

// SetListener sets who hears refresh start and complete. nil detaches it.
func (c *Controller) SetListener(l Listener) { c.listener = l }

// SetIndicator attaches the visual indicator. nil detaches it.
func (c *Controller) SetIndicator(i Indicator) { c.indicator = i }

// SetIndicatorView attaches an indicator given as an arbitrary view. A nil
// view detaches the current one.
func (c *Controller) SetIndicatorView(view any) error {
	if view == nil {
		c.indicator = nil
		return nil
	}
	i, ok := view.(Indicator)
	if !ok {
		return fmt.Errorf("view %T does not implement refresh.Indicator: %w", view, ErrInvalidArgument)
	}
	c.indicator = i
	return nil
}

func (c *Controller) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetMode restricts which edges may commit a refresh.
func (c *Controller) SetMode(m Mode) { c.mode = m }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) MaxOverscrollDistance() int { return c.tracker.MaxDistance() }

// SpringingBack reports whether a spring-back job is pending.
func (c *Controller) SpringingBack() bool { return c.spring.Active() }

// IsRefreshing reports whether any edge named by mode is committed.
func (c *Controller) IsRefreshing(mode Mode) bool {
	return c.state.get(mode)
}

// Phase derives the state of one edge.
func (c *Controller) Phase(edge Mode) Phase {
	if c.state.get(edge) {
		return PhaseCommitted
	}
	if y := c.container.ScrollY(); y != 0 && edgeOf(y) == edge {
		return PhasePulling
	}
	return PhaseIdle
}

// SetRefreshing forces the refresh state of the edges named by mode. No
// listener is notified.
func (c *Controller) SetRefreshing(mode Mode, refreshing bool) {
	c.state.set(mode, refreshing)
}

// SetRefreshComplete ends every refresh in progress. The listener hears
// about it once, and only if something was refreshing; the indicator is
// always told.
func (c *Controller) SetRefreshComplete() {
	was := c.state.mode()
	c.state.set(ModeBoth, false)
	if was != ModeNone {
		c.logger.Debug("refresh complete", "edges", was.String())
		if c.listener != nil {
			c.listener.OnRefreshComplete()
		}
	}
	if c.indicator != nil {
		c.indicator.OnRefreshComplete()
	}
}

// OnPointerDown starts a gesture. A pending spring-back is dropped so it
// cannot fight the new drag.
func (c *Controller) OnPointerDown() {
	c.spring.Cancel()
	c.tracker.SetPointerDown(true)
	if c.indicator != nil {
		c.indicator.SetPulling(true)
	}
}

// OnScrollDelta simulates overscroll for containers whose content does not
// overflow. distanceY is the finger movement since the last event, positive
// when moving toward the end.
func (c *Controller) OnScrollDelta(distanceY float64) {
	if c.container.CanOverscroll() || !c.tracker.PointerDown() {
		return
	}
	c.tracker.Reset()
	delta := int(math.Floor(distanceY + 0.5))
	scrollY := c.container.ScrollY()
	if c.tracker.Reached(scrollY) {
		if c.commit(scrollY) {
			return
		}
		// A disabled edge holds at the threshold but may be pushed back.
		if !c.mode.Includes(edgeOf(scrollY)) && delta*scrollY > 0 {
			return
		}
	}
	c.container.ScrollBy(c.ComputeDeltaY(delta, scrollY, true))
	c.dispatchPulled(scrollY)
}

// OnFling is accepted but does not take part in refresh decisions.
func (c *Controller) OnFling(velocityY float64) {}

// OnPointerUp ends a gesture normally. If the gesture left overscroll
// behind, the touch stream is cancelled so the host does not treat the
// release as a click.
func (c *Controller) OnPointerUp() {
	residual := c.tracker.Overscroll()
	if !c.release() {
		return
	}
	if residual != 0 {
		c.container.CancelTouch()
	}
}

// OnPointerCancel ends a gesture that the host or controller aborted.
func (c *Controller) OnPointerCancel() {
	c.release()
}

func (c *Controller) release() bool {
	if !c.tracker.PointerDown() {
		return false
	}
	c.tracker.SetPointerDown(false)
	residual := c.tracker.Overscroll()
	c.tracker.Reset()
	if y := c.container.ScrollY(); y != 0 || residual != 0 {
		c.logger.Debug("spring-back", "from", y)
		c.spring.Start(y)
	}
	if c.indicator != nil {
		c.indicator.SetPulling(false)
	}
	return true
}

// BeforeOverscrollBy is the container's native overscroll hook, called with
// the offset before a delta is applied.
func (c *Controller) BeforeOverscrollBy(scrollY int, isTouch bool) {
	if !c.tracker.Reached(scrollY) {
		c.dispatchPulled(scrollY)
		return
	}
	if scrollY != 0 && isTouch {
		c.tracker.Reset()
		c.commit(scrollY)
	}
}

// ComputeDeltaY returns how much of deltaY the container may apply at
// scrollY. Nothing moves while any edge is refreshing.
func (c *Controller) ComputeDeltaY(deltaY, scrollY int, isTouch bool) int {
	if c.state.get(ModeBoth) {
		return 0
	}
	return c.tracker.Damp(deltaY, scrollY, isTouch)
}

// OverscrollBy runs both native hooks and returns the delta to apply along
// with the overscroll clamp.
func (c *Controller) OverscrollBy(deltaY, scrollY int, isTouch bool) (dy, maxOverscroll int) {
	c.BeforeOverscrollBy(scrollY, isTouch)
	return c.ComputeDeltaY(deltaY, scrollY, isTouch), c.tracker.MaxDistance()
}

// AfterScrollChanged records the container's offset while a pointer is
// down.
func (c *Controller) AfterScrollChanged(scrollY int) {
	if c.tracker.PointerDown() {
		c.tracker.SetOverscroll(scrollY)
	}
}

// commit starts a refresh on the edge scrollY lies past. It returns false
// when the edge is disabled or already refreshing.
func (c *Controller) commit(scrollY int) bool {
	edge := edgeOf(scrollY)
	if edge == ModeNone || !c.mode.Includes(edge) || c.state.get(edge) {
		return false
	}
	c.container.CancelTouch()
	c.logger.Debug("refresh start", "edge", edge.String(), "scrollY", scrollY)
	if c.listener != nil {
		c.listener.OnRefreshStart(edge)
	}
	if c.indicator != nil {
		c.indicator.OnRefreshStart()
	}
	c.state.set(edge, true)
	return true
}

func (c *Controller) dispatchPulled(scrollY int) {
	if c.indicator == nil {
		return
	}
	if edge := edgeOf(scrollY); edge != ModeNone && !c.mode.Includes(edge) {
		return
	}
	c.indicator.OnPulled(c.tracker.Fraction(scrollY))
}
