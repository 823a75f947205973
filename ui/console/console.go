// Package console replays scripted gestures through a refresh controller
// without a terminal UI and prints the lifecycle as it happens.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"refreshnow/internal/refresh"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// maxFrames bounds a single frames step so a spring that never settles
// cannot hang the replay.
const maxFrames = 1000

type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
	ActionFrames
	ActionComplete
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	case ActionFrames:
		return "frames"
	case ActionComplete:
		return "complete"
	}
	return "unknown"
}

// Step is one scripted input. Delta is only used by moves and is positive
// toward the end edge.
type Step struct {
	Action Action
	Delta  float64
}

// DefaultScript pulls past the start edge, lets the spring settle and then
// finishes the refresh.
func DefaultScript() []Step {
	steps := []Step{{Action: ActionDown}}
	for i := 0; i < 8; i++ {
		steps = append(steps, Step{Action: ActionMove, Delta: -40})
	}
	return append(steps,
		Step{Action: ActionUp},
		Step{Action: ActionFrames},
		Step{Action: ActionComplete},
	)
}

// ParseScript reads whitespace separated steps such as
// "down move:-40 move:-40 up frames complete". A move may carry a repeat
// count: "move:-40x5".
func ParseScript(s string) ([]Step, error) {
	var steps []Step
	for _, tok := range strings.Fields(s) {
		name, arg, _ := strings.Cut(tok, ":")
		switch strings.ToLower(name) {
		case "down":
			steps = append(steps, Step{Action: ActionDown})
		case "up":
			steps = append(steps, Step{Action: ActionUp})
		case "cancel":
			steps = append(steps, Step{Action: ActionCancel})
		case "frames":
			steps = append(steps, Step{Action: ActionFrames})
		case "complete":
			steps = append(steps, Step{Action: ActionComplete})
		case "move":
			delta, count, err := parseMove(arg)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", tok, err)
			}
			for i := 0; i < count; i++ {
				steps = append(steps, Step{Action: ActionMove, Delta: delta})
			}
		default:
			return nil, fmt.Errorf("unknown step %q", tok)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty script")
	}
	return steps, nil
}

func parseMove(arg string) (float64, int, error) {
	value, repeat, hasRepeat := strings.Cut(arg, "x")
	delta, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad delta %q", value)
	}
	count := 1
	if hasRepeat {
		count, err = strconv.Atoi(repeat)
		if err != nil || count < 1 {
			return 0, 0, fmt.Errorf("bad repeat %q", repeat)
		}
	}
	return delta, count, nil
}

// Result summarizes a replay.
type Result struct {
	Starts       []refresh.Mode
	Completes    int
	Cancels      int
	Frames       int
	FinalScrollY int
}

// track is an in-memory container whose content never overflows, so every
// drag goes through the controller's simulated overscroll.
type track struct {
	scrollY int
	queue   []func()
	cancel  func()
	cancels int
}

func (t *track) ScrollY() int                           { return t.scrollY }
func (t *track) ScrollBy(dy int)                        { t.scrollY += dy }
func (t *track) ScrollTo(y int)                         { t.scrollY = y }
func (t *track) CanOverscroll() bool                    { return false }
func (t *track) PostDelayed(_ time.Duration, fn func()) { t.queue = append(t.queue, fn) }

func (t *track) CancelTouch() {
	t.cancels++
	if t.cancel != nil {
		t.cancel()
	}
}

// runFrames drains posted tasks, including those posted while draining.
func (t *track) runFrames() int {
	n := 0
	for len(t.queue) > 0 && n < maxFrames {
		fn := t.queue[0]
		t.queue = t.queue[1:]
		fn()
		n++
	}
	return n
}

// printer is both listener and indicator and writes every callback.
type printer struct {
	w      io.Writer
	result *Result
}

func (p *printer) OnRefreshStart(edge refresh.Mode) {
	p.result.Starts = append(p.result.Starts, edge)
	fmt.Fprintf(p.w, "  %s▶ refresh start%s edge=%s\n", colorGreen, colorReset, edge)
}

func (p *printer) OnRefreshComplete() {
	p.result.Completes++
	fmt.Fprintf(p.w, "  %s✓ refresh complete%s\n", colorGreen, colorReset)
}

type indicatorPrinter struct {
	w io.Writer
}

func (p indicatorPrinter) SetPulling(pulling bool) {
	fmt.Fprintf(p.w, "  %s· pulling=%t%s\n", colorCyan, pulling, colorReset)
}

func (p indicatorPrinter) OnPulled(fraction float64) {
	fmt.Fprintf(p.w, "  %s%s%s %3.0f%%\n", colorFor(fraction), bar(fraction), colorReset, fraction*100)
}

func (p indicatorPrinter) OnRefreshStart() {}

func (p indicatorPrinter) OnRefreshComplete() {}

// Replay runs steps against a fresh controller and writes the trace to w.
func Replay(w io.Writer, cfg refresh.Config, mode refresh.Mode, steps []Step) (Result, error) {
	var result Result
	t := &track{}
	ctl, err := refresh.New(t, cfg)
	if err != nil {
		return result, err
	}
	ctl.SetMode(mode)
	ctl.SetListener(&printer{w: w, result: &result})
	ctl.SetIndicator(indicatorPrinter{w: w})
	t.cancel = func() {
		fmt.Fprintf(w, "  %s✗ touch cancelled%s\n", colorRed, colorReset)
		ctl.OnPointerCancel()
	}

	fmt.Fprintf(w, "%s■ REFRESHNOW REPLAY%s mode=%s threshold=%d\n",
		colorCyan, colorReset, mode, ctl.MaxOverscrollDistance())

	for _, s := range steps {
		label := s.Action.String()
		if s.Action == ActionMove {
			label += " " + strconv.FormatFloat(s.Delta, 'f', -1, 64)
		}
		fmt.Fprintf(w, "%s─ %s%s\n", colorCyan, label, colorReset)

		switch s.Action {
		case ActionDown:
			ctl.OnPointerDown()
		case ActionMove:
			ctl.OnScrollDelta(s.Delta)
		case ActionUp:
			ctl.OnPointerUp()
		case ActionCancel:
			ctl.OnPointerCancel()
		case ActionFrames:
			n := t.runFrames()
			result.Frames += n
			fmt.Fprintf(w, "  %d frames\n", n)
		case ActionComplete:
			ctl.SetRefreshComplete()
		}
		fmt.Fprintf(w, "  scrollY=%d start=%s end=%s\n",
			t.scrollY, ctl.Phase(refresh.ModeStart), ctl.Phase(refresh.ModeEnd))
	}

	result.Cancels = t.cancels
	result.FinalScrollY = t.scrollY
	fmt.Fprintf(w, "%s─ Summary%s: starts=%d completes=%d cancels=%d frames=%d scrollY=%d\n\n",
		colorCyan, colorReset, len(result.Starts), result.Completes, result.Cancels, result.Frames, result.FinalScrollY)
	return result, nil
}

// bar draws a ten cell progress bar, full once the threshold is reached.
func bar(fraction float64) string {
	filled := int(fraction * 10)
	if filled > 10 {
		filled = 10
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func colorFor(fraction float64) string {
	switch {
	case fraction >= 1:
		return colorGreen
	case fraction >= 0.5:
		return colorYellow
	default:
		return colorRed
	}
}
