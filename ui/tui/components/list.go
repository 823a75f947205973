package components

import (
	"fmt"
	"strings"
	"time"

	"refreshnow/internal/collector"
	"refreshnow/internal/refresh"
	"refreshnow/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// RowUnits is how many scroll units one terminal row spans.
const RowUnits = 8

// OverscrollHook receives the list's native overscroll.
type OverscrollHook interface {
	OverscrollBy(deltaY, scrollY int, isTouch bool) (dy, maxOverscroll int)
	AfterScrollChanged(scrollY int)
}

// Poster schedules work on the UI loop.
type Poster interface {
	PostDelayed(d time.Duration, fn func())
}

// RefreshList is a scrollable process list that can be pulled past either
// edge. It implements refresh.Container.
type RefreshList struct {
	Rows   []collector.ProcessRow
	Width  int
	Height int // viewport height in rows

	contentY int // content scroll in units, 0 at the top
	scrollY  int // offset past the content boundary in units

	hook     OverscrollHook
	poster   Poster
	onCancel func()
}

var _ refresh.Container = (*RefreshList)(nil)

func NewRefreshList(poster Poster) *RefreshList {
	return &RefreshList{poster: poster}
}

// SetHook attaches the native overscroll hook.
func (l *RefreshList) SetHook(h OverscrollHook) { l.hook = h }

// OnCancel sets what a synthetic touch cancel does.
func (l *RefreshList) OnCancel(fn func()) { l.onCancel = fn }

func (l *RefreshList) SetSize(w, h int) {
	l.Width = w
	l.Height = h
	l.clampContent()
}

// SetRows replaces the rows and returns to the top.
func (l *RefreshList) SetRows(rows []collector.ProcessRow) {
	l.Rows = rows
	l.contentY = 0
}

// AppendRows adds rows at the end, keeping the scroll position.
func (l *RefreshList) AppendRows(rows []collector.ProcessRow) {
	l.Rows = append(l.Rows, rows...)
	l.clampContent()
}

func (l *RefreshList) ContentY() int { return l.contentY }

func (l *RefreshList) ScrollY() int { return l.scrollY }

func (l *RefreshList) ScrollBy(dy int) { l.setScrollY(l.scrollY + dy) }

func (l *RefreshList) ScrollTo(y int) { l.setScrollY(y) }

// CanOverscroll reports whether the rows overflow the viewport.
func (l *RefreshList) CanOverscroll() bool {
	return len(l.Rows) > l.Height
}

func (l *RefreshList) CancelTouch() {
	if l.onCancel != nil {
		l.onCancel()
	}
}

func (l *RefreshList) PostDelayed(d time.Duration, fn func()) {
	l.poster.PostDelayed(d, fn)
}

func (l *RefreshList) setScrollY(y int) {
	l.scrollY = y
	if l.hook != nil {
		l.hook.AfterScrollChanged(y)
	}
}

func (l *RefreshList) maxContentY() int {
	extra := len(l.Rows) - l.Height
	if extra < 0 {
		return 0
	}
	return extra * RowUnits
}

func (l *RefreshList) clampContent() {
	if l.contentY > l.maxContentY() {
		l.contentY = l.maxContentY()
	}
	if l.contentY < 0 {
		l.contentY = 0
	}
}

// Drag scrolls overflowing content by delta units. Whatever the content
// cannot absorb at an edge turns into overscroll.
func (l *RefreshList) Drag(delta int, touch bool) {
	if !l.CanOverscroll() || delta == 0 {
		return
	}
	if l.scrollY == 0 {
		target := l.contentY + delta
		switch {
		case target < 0:
			l.contentY = 0
			delta = target
		case target > l.maxContentY():
			delta = target - l.maxContentY()
			l.contentY = l.maxContentY()
		default:
			l.contentY = target
			return
		}
	}
	l.overscrollBy(delta, touch)
}

// Wheel scrolls the content by whole rows without overscrolling.
func (l *RefreshList) Wheel(rows int) {
	if l.scrollY != 0 {
		return
	}
	l.contentY += rows * RowUnits
	l.clampContent()
}

func (l *RefreshList) overscrollBy(delta int, touch bool) {
	if l.hook == nil {
		return
	}
	dy, limit := l.hook.OverscrollBy(delta, l.scrollY, touch)
	y := l.scrollY + dy
	if y > limit {
		y = limit
	}
	if y < -limit {
		y = -limit
	}
	// Crossing the boundary ends the overscroll instead of flipping edges.
	if (l.scrollY < 0 && y > 0) || (l.scrollY > 0 && y < 0) {
		y = 0
	}
	if y != l.scrollY {
		l.setScrollY(y)
	}
}

// gapRows converts an overscroll offset into blank rows.
func gapRows(units int) int {
	if units < 0 {
		units = -units
	}
	return (units + RowUnits - 1) / RowUnits
}

func (l *RefreshList) View() string {
	height := l.Height
	if height <= 0 {
		return ""
	}
	first := l.contentY / RowUnits
	window := make([]string, 0, height)
	for i := first; i < len(l.Rows) && len(window) < height; i++ {
		window = append(window, l.formatRow(l.Rows[i]))
	}

	var lines []string
	switch gap := gapRows(l.scrollY); {
	case l.scrollY < 0:
		lines = append(blankLines(gap), window...)
	case l.scrollY > 0:
		if gap > len(window) {
			gap = len(window)
		}
		lines = append(window[gap:], blankLines(gap)...)
	default:
		lines = window
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(l.Rows) == 0 && l.scrollY == 0 {
		lines[0] = lipgloss.NewStyle().Foreground(styles.Subtle).Render("No processes loaded")
	}
	return strings.Join(lines, "\n")
}

func (l *RefreshList) formatRow(r collector.ProcessRow) string {
	line := fmt.Sprintf("%7d  %-24s %6.1f%% %6.1f%%", r.PID, truncate(r.Name, 24), r.CPU, r.Memory)
	if l.Width > 0 {
		line = lipgloss.NewStyle().MaxWidth(l.Width).Render(line)
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func blankLines(n int) []string {
	return make([]string, n)
}
