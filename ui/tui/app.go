package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"refreshnow/internal/collector"
	"refreshnow/internal/config"
	"refreshnow/internal/refresh"
	"refreshnow/ui/tui/components"
	"refreshnow/ui/tui/state"
	"refreshnow/ui/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	provider  collector.RowProvider
	cfg       *config.Config
	ctl       *refresh.Controller
	list      *components.RefreshList
	indicator *components.PullIndicator
	frames    *frameQueue
	state     state.AppState
	logger    *slog.Logger

	// hitTest decides whether a press lands on the list
	hitTest func(tea.MouseMsg) bool
	reloads <-chan config.Reload

	dragging bool
	lastY    int
	pending  []tea.Cmd
	quitting bool
	width    int
	height   int
}

// Messages
type RowsLoadedMsg struct {
	Edge refresh.Mode
	Rows []collector.ProcessRow
	Err  error
}

type configReloadMsg config.Reload

func InitialModel(provider collector.RowProvider, cfg *config.Config) (*MainModel, error) {
	mode, err := cfg.RefreshMode()
	if err != nil {
		return nil, err
	}

	frames := newFrameQueue()
	list := components.NewRefreshList(frames)

	// Bind checks the list really is a refresh container.
	ctl, err := refresh.Bind(list, cfg.Refresh())
	if err != nil {
		return nil, err
	}
	ctl.SetMode(mode)
	ctl.SetLogger(slog.Default())

	indicator := components.NewPullIndicator(40)
	if err := ctl.SetIndicatorView(indicator); err != nil {
		return nil, err
	}

	m := &MainModel{
		provider:  provider,
		cfg:       cfg,
		ctl:       ctl,
		list:      list,
		indicator: indicator,
		frames:    frames,
		logger:    slog.Default(),
		hitTest:   inListZone,
	}
	ctl.SetListener(m)
	list.SetHook(ctl)
	list.OnCancel(func() {
		m.dragging = false
		m.ctl.OnPointerCancel()
	})
	return m, nil
}

func inListZone(msg tea.MouseMsg) bool {
	return zone.Get(views.ListZoneID).InBounds(msg)
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	m.ctl.SetRefreshing(refresh.ModeStart, true)
	m.indicator.OnRefreshStart()
	return tea.Batch(
		m.indicator.Init(),
		m.loadCmd(refresh.ModeStart),
		m.waitForReload(),
	)
}

// WatchConfig makes the model apply config file reloads from ch.
func (m *MainModel) WatchConfig(ch <-chan config.Reload) { m.reloads = ch }

// OnRefreshStart is called by the controller when a pull commits.
func (m *MainModel) OnRefreshStart(edge refresh.Mode) {
	m.state.Log(time.Now(), fmt.Sprintf("refresh started at %s edge", edge))
	m.pending = append(m.pending, m.loadCmd(edge))
}

// OnRefreshComplete is called by the controller once loads finish.
func (m *MainModel) OnRefreshComplete() {
	m.state.LastRefresh = time.Now()
	m.state.Log(m.state.LastRefresh, "refresh complete")
}

// Commands
func (m *MainModel) loadCmd(edge refresh.Mode) tea.Cmd {
	offset := 0
	if edge == refresh.ModeEnd {
		offset = len(m.list.Rows)
	}
	m.state.Loading++
	provider := m.provider
	delay := m.cfg.RefreshDelay()
	limit := m.cfg.PageSize
	return func() tea.Msg {
		start := time.Now()
		rows, err := provider.Rows(context.Background(), offset, limit)
		if wait := delay - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
		return RowsLoadedMsg{Edge: edge, Rows: rows, Err: err}
	}
}

func (m *MainModel) waitForReload() tea.Cmd {
	ch := m.reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadMsg(r)
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.route(msg)
	return model, tea.Batch(cmd, m.flush())
}

func (m *MainModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case frameTaskMsg:
		m.frames.Run(msg.id)
		return m, nil

	case RowsLoadedMsg:
		return m.handleRowsLoadedMsg(msg)

	case configReloadMsg:
		return m.handleConfigReloadMsg(msg)

	case spinner.TickMsg:
		_, cmd := m.indicator.Update(msg)
		return m, cmd
	}

	return m, nil
}

// flush collects commands produced by controller callbacks and posted frames.
func (m *MainModel) flush() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	cmds = append(cmds, m.frames.Flush())
	return tea.Batch(cmds...)
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		if m.ctl.IsRefreshing(refresh.ModeStart) {
			return m, nil
		}
		m.ctl.SetRefreshing(refresh.ModeStart, true)
		m.indicator.OnRefreshStart()
		m.state.Log(time.Now(), "reload requested")
		return m, m.loadCmd(refresh.ModeStart)
	case "up", "k":
		m.list.Wheel(-1)
	case "down", "j":
		m.list.Wheel(1)
	}
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.list.Wheel(-1)

	case msg.Button == tea.MouseButtonWheelDown:
		m.list.Wheel(1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !m.hitTest(msg) {
			return m, nil
		}
		m.dragging = true
		m.lastY = msg.Y
		m.ctl.OnPointerDown()

	case msg.Action == tea.MouseActionMotion:
		if !m.dragging {
			return m, nil
		}
		distance := (m.lastY - msg.Y) * components.RowUnits
		m.lastY = msg.Y
		if distance == 0 {
			return m, nil
		}
		// Both paths see the event, as on a touch screen: the list moves its
		// own content and the controller simulates overscroll when the list
		// cannot.
		m.list.Drag(distance, true)
		m.ctl.OnScrollDelta(float64(distance))

	case msg.Action == tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		m.ctl.OnPointerUp()
	}
	return m, nil
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.list.SetSize(max(msg.Width-4, 1), max(msg.Height-views.ChromeHeight, 1))
	m.indicator.Resize(msg.Width)
	return m, nil
}

func (m *MainModel) handleRowsLoadedMsg(msg RowsLoadedMsg) (tea.Model, tea.Cmd) {
	if m.state.Loading > 0 {
		m.state.Loading--
	}
	if msg.Err != nil {
		m.state.Err = msg.Err
		m.logger.Error("load rows", "edge", msg.Edge.String(), "err", msg.Err)
	} else {
		m.state.Err = nil
		if msg.Edge == refresh.ModeEnd {
			m.list.AppendRows(msg.Rows)
		} else {
			m.list.SetRows(msg.Rows)
		}
	}
	if m.state.Loading == 0 {
		m.ctl.SetRefreshComplete()
	}
	return m, nil
}

// handleConfigReloadMsg applies the settings that can change while running.
// Density and spring physics need a restart.
func (m *MainModel) handleConfigReloadMsg(msg configReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state.Err = msg.Err
		m.logger.Warn("config reload", "err", msg.Err)
		return m, m.waitForReload()
	}
	mode, err := msg.Config.RefreshMode()
	if err != nil {
		m.state.Err = err
		return m, m.waitForReload()
	}
	m.ctl.SetMode(mode)
	m.cfg.Mode = msg.Config.Mode
	m.cfg.PageSize = msg.Config.PageSize
	m.cfg.RefreshDelayMS = msg.Config.RefreshDelayMS
	m.state.Log(time.Now(), "config reloaded, mode "+mode.String())
	return m, m.waitForReload()
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	return views.RenderList(m.state, views.ViewProps{
		Width:         m.width,
		Height:        m.height,
		ListView:      m.list.View(),
		IndicatorView: m.indicator.View(),
		Phases:        views.RenderPhases(m.ctl.Phase(refresh.ModeStart), m.ctl.Phase(refresh.ModeEnd)),
		Rows:          len(m.list.Rows),
	})
}

// Start runs the TUI until the user quits.
// A nil reloads channel disables live config reload.
func Start(provider collector.RowProvider, cfg *config.Config, reloads <-chan config.Reload) error {
	m, err := InitialModel(provider, cfg)
	if err != nil {
		return err
	}
	m.WatchConfig(reloads)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}
