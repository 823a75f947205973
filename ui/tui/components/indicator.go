package components

import (
	"fmt"

	"refreshnow/internal/refresh"
	"refreshnow/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PullIndicator shows how far the list is pulled and whether a refresh is
// running. It implements refresh.Indicator.
type PullIndicator struct {
	Width int

	pulling    bool
	fraction   float64
	refreshing bool
	refreshes  int

	bar     progress.Model
	spinner spinner.Model
	history sparkline.Model
}

var (
	_ refresh.Indicator = (*PullIndicator)(nil)
	_ Component         = (*PullIndicator)(nil)
)

func NewPullIndicator(width int) *PullIndicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Highlight)

	return &PullIndicator{
		Width:   width,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(width/2), progress.WithoutPercentage()),
		spinner: s,
		history: sparkline.New(historyWidth, 1),
	}
}

const historyWidth = 20

func (p *PullIndicator) SetPulling(pulling bool) {
	p.pulling = pulling
	if !pulling {
		p.fraction = 0
	}
}

func (p *PullIndicator) OnPulled(fraction float64) {
	p.fraction = fraction
	p.history.Push(fraction)
}

func (p *PullIndicator) OnRefreshStart() {
	p.refreshing = true
	p.refreshes++
}

func (p *PullIndicator) OnRefreshComplete() {
	p.refreshing = false
}

func (p *PullIndicator) Pulling() bool { return p.pulling }

func (p *PullIndicator) Fraction() float64 { return p.fraction }

func (p *PullIndicator) Refreshing() bool { return p.refreshing }

func (p *PullIndicator) Refreshes() int { return p.refreshes }

func (p *PullIndicator) Resize(width int) {
	p.Width = width
	p.bar.Width = width / 2
}

func (p *PullIndicator) Init() tea.Cmd {
	return p.spinner.Tick
}

func (p *PullIndicator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PullIndicator) View() string {
	var status string
	switch {
	case p.refreshing:
		status = p.spinner.View() + " Refreshing..."
	case p.fraction >= 1:
		status = lipgloss.NewStyle().Foreground(styles.Special).Render("Release to refresh")
	case p.pulling && p.fraction > 0:
		status = fmt.Sprintf("Pull %3.0f%%", p.fraction*100)
	default:
		status = lipgloss.NewStyle().Foreground(styles.Subtle).Render("Drag past an edge to refresh")
	}

	fraction := p.fraction
	if fraction > 1 {
		fraction = 1
	}
	if p.refreshing {
		fraction = 1
	}

	p.history.Draw()
	return lipgloss.JoinHorizontal(lipgloss.Center,
		p.bar.ViewAs(fraction),
		"  ",
		p.history.View(),
		"  ",
		status,
	)
}
