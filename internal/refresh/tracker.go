package refresh

import (
	"fmt"
	"math"
)

// Tracker holds the overscroll state of one controller and turns raw drag
// input into damped scroll deltas.
type Tracker struct {
	maxDistance int
	overscrollY int
	pointerDown bool
}

// NewTracker creates a tracker committing at maxDistance units past a boundary.
func NewTracker(maxDistance int) (*Tracker, error) {
	if maxDistance <= 0 {
		return nil, fmt.Errorf("max overscroll distance %d: %w", maxDistance, ErrInvalidArgument)
	}
	return &Tracker{maxDistance: maxDistance}, nil
}

// MaxDistance is the commit threshold in units.
func (t *Tracker) MaxDistance() int { return t.maxDistance }

// Overscroll returns the tracked distance past the boundary, 0 at rest.
func (t *Tracker) Overscroll() int { return t.overscrollY }

// SetOverscroll records the container's offset past the boundary.
func (t *Tracker) SetOverscroll(y int) { t.overscrollY = y }

// Reset returns the tracked overscroll to rest.
func (t *Tracker) Reset() { t.overscrollY = 0 }

// PointerDown reports whether a gesture is in progress.
func (t *Tracker) PointerDown() bool { return t.pointerDown }

// SetPointerDown marks the start or end of a gesture.
func (t *Tracker) SetPointerDown(down bool) { t.pointerDown = down }

// Fraction reports how far scrollY is toward the commit threshold.
// It is not clamped; values above 1 are seen while the threshold is passed.
func (t *Tracker) Fraction(scrollY int) float64 {
	return math.Abs(float64(scrollY)) / float64(t.maxDistance)
}

// Reached reports whether scrollY is at or beyond the commit threshold.
func (t *Tracker) Reached(scrollY int) bool {
	return abs(scrollY) >= t.maxDistance
}

// Factor is the rubber-band divisor for a pull fraction: 2 at rest, 5 at the
// threshold, growing further past it.
func Factor(fraction float64) int {
	return 2 + int(math.Floor(fraction*3+0.5))
}

// Damp scales rawDeltaY for a pull currently scrollY units deep. Deltas that
// are not user driven pass through unchanged.
func (t *Tracker) Damp(rawDeltaY, scrollY int, userDriven bool) int {
	if !userDriven {
		return rawDeltaY
	}
	return rawDeltaY / Factor(t.Fraction(scrollY))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
