package refresh

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Decay models the residual overscroll returning to rest.
type Decay interface {
	// Reset starts a new decay from offset.
	Reset(from int)
	// Next advances one frame and returns the offset to apply. more is false
	// once the model has come to rest.
	Next() (offset int, more bool)
}

// springDecay integrates a harmonica spring toward 0.
type springDecay struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newSpringDecay(frame time.Duration, frequency, damping float64) *springDecay {
	return &springDecay{
		spring: harmonica.NewSpring(frame.Seconds(), frequency, damping),
	}
}

func (d *springDecay) Reset(from int) {
	d.pos = float64(from)
	d.vel = 0
}

func (d *springDecay) Next() (int, bool) {
	d.pos, d.vel = d.spring.Update(d.pos, d.vel, 0)
	offset := int(math.Round(d.pos))
	if offset == 0 {
		return 0, false
	}
	return offset, true
}

// SpringBack animates a container's offset back to 0 with one deferred
// step per frame. Each Start or Cancel bumps a generation so a step posted
// for an older job does nothing when it fires.
type SpringBack struct {
	host   Container
	decay  Decay
	frame  time.Duration
	gen    uint64
	active bool
	onDone func()
}

// NewSpringBack creates an animator stepping every frame.
func NewSpringBack(host Container, decay Decay, frame time.Duration) *SpringBack {
	return &SpringBack{host: host, decay: decay, frame: frame}
}

// Active reports whether a job is pending.
func (s *SpringBack) Active() bool { return s.active }

// Start replaces any pending job with one decaying from the offset. The
// first step runs on the next frame.
func (s *SpringBack) Start(from int) {
	s.gen++
	s.active = true
	s.decay.Reset(from)
	s.post(s.gen)
}

// Cancel drops the pending job, leaving the offset where it is.
func (s *SpringBack) Cancel() {
	s.gen++
	s.active = false
}

func (s *SpringBack) post(gen uint64) {
	s.host.PostDelayed(s.frame, func() { s.step(gen) })
}

func (s *SpringBack) step(gen uint64) {
	if gen != s.gen || !s.active {
		return
	}
	if offset, more := s.decay.Next(); more {
		s.host.ScrollTo(offset)
		s.post(gen)
		return
	}
	s.host.ScrollTo(0)
	s.active = false
	if s.onDone != nil {
		s.onDone()
	}
}
