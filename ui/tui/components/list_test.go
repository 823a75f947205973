package components

import (
	"strings"
	"testing"
	"time"

	"refreshnow/internal/collector"
)

// passHook applies deltas unchanged and clamps at limit.
type passHook struct {
	limit int
	calls int
	last  int
}

func (h *passHook) OverscrollBy(deltaY, scrollY int, isTouch bool) (int, int) {
	h.calls++
	return deltaY, h.limit
}

func (h *passHook) AfterScrollChanged(scrollY int) { h.last = scrollY }

type nopPoster struct{ posted int }

func (p *nopPoster) PostDelayed(time.Duration, func()) { p.posted++ }

func newList(rows, height int) (*RefreshList, *passHook) {
	l := NewRefreshList(&nopPoster{})
	h := &passHook{limit: 48}
	l.SetHook(h)
	l.SetSize(40, height)
	r := make([]collector.ProcessRow, rows)
	for i := range r {
		r[i] = collector.ProcessRow{PID: int32(i + 1), Name: "proc"}
	}
	l.SetRows(r)
	return l, h
}

func TestDragScrollsContentFirst(t *testing.T) {
	l, h := newList(30, 10)

	l.Drag(3*RowUnits, true)
	if l.ContentY() != 3*RowUnits {
		t.Errorf("Expected contentY %d, got %d", 3*RowUnits, l.ContentY())
	}
	if h.calls != 0 {
		t.Errorf("Expected no overscroll, got %d hook calls", h.calls)
	}
}

func TestDragOverscrollsAtEdges(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		delta   int
		scrollY int
	}{
		{"past the start", 0, -20, -20},
		{"past the end", 20 * RowUnits, 20, 20},
		{"leftover beyond the end", 18 * RowUnits, 3 * RowUnits, 8},
		{"clamped at the limit", 0, -100, -48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, h := newList(30, 10)
			l.contentY = tt.start

			l.Drag(tt.delta, true)
			if l.ScrollY() != tt.scrollY {
				t.Errorf("Expected scrollY %d, got %d", tt.scrollY, l.ScrollY())
			}
			if h.last != tt.scrollY {
				t.Errorf("Expected hook to see %d, got %d", tt.scrollY, h.last)
			}
		})
	}
}

func TestDragDoesNotFlipEdges(t *testing.T) {
	l, _ := newList(30, 10)
	l.Drag(-20, true)
	l.Drag(50, true)

	if l.ScrollY() != 0 {
		t.Errorf("Expected overscroll to end at 0, got %d", l.ScrollY())
	}
}

func TestShortListIgnoresDrag(t *testing.T) {
	l, h := newList(5, 10)
	if l.CanOverscroll() {
		t.Fatal("Expected a short list not to overflow")
	}
	l.Drag(-40, true)
	if h.calls != 0 || l.ScrollY() != 0 {
		t.Errorf("Expected drag to be left to the controller, got scrollY %d", l.ScrollY())
	}
}

func TestWheel(t *testing.T) {
	l, _ := newList(30, 10)

	l.Wheel(2)
	if l.ContentY() != 2*RowUnits {
		t.Errorf("Expected contentY %d, got %d", 2*RowUnits, l.ContentY())
	}
	l.Wheel(-10)
	if l.ContentY() != 0 {
		t.Errorf("Expected wheel to stop at the top, got %d", l.ContentY())
	}
	l.Wheel(100)
	if l.ContentY() != 20*RowUnits {
		t.Errorf("Expected wheel to stop at the bottom, got %d", l.ContentY())
	}

	l.ScrollTo(-8)
	l.Wheel(-1)
	if l.ContentY() != 20*RowUnits {
		t.Error("Expected wheel to be ignored while overscrolled")
	}
}

func TestViewShowsGap(t *testing.T) {
	l, _ := newList(30, 10)
	l.ScrollTo(-2 * RowUnits)

	lines := strings.Split(l.View(), "\n")
	if len(lines) != 10 {
		t.Fatalf("Expected 10 lines, got %d", len(lines))
	}
	if lines[0] != "" || lines[1] != "" {
		t.Errorf("Expected two blank rows on top, got %q %q", lines[0], lines[1])
	}
	if !strings.Contains(lines[2], "proc") {
		t.Errorf("Expected first process on row 3, got %q", lines[2])
	}
}

func TestViewEmpty(t *testing.T) {
	l, _ := newList(0, 4)
	if !strings.Contains(l.View(), "No processes loaded") {
		t.Error("Expected empty placeholder")
	}
}

func TestCancelTouchCallsHandler(t *testing.T) {
	l, _ := newList(3, 10)
	called := false
	l.OnCancel(func() { called = true })

	l.CancelTouch()
	if !called {
		t.Error("Expected cancel handler to run")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Errorf("Expected %q, got %q", "héllo…", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected untouched string, got %q", got)
	}
}
