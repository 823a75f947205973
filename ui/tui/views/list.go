package views

import (
	"fmt"

	"refreshnow/ui/tui/state"
	"refreshnow/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// ListZoneID marks the list area for mouse hit-testing.
const ListZoneID = "refresh_list"

// Rows the page spends outside the list viewport: header, indicator, card
// border and footer.
const ChromeHeight = 7

type ListView struct{}

func (v ListView) Render(s state.AppState, props ViewProps) string {
	title := "REFRESHNOW // PROCESSES"
	header := styles.HeaderStyle.Width(props.Width).Render(title)

	status := fmt.Sprintf("%d rows", props.Rows)
	if !s.LastRefresh.IsZero() {
		status += " • refreshed " + s.LastRefresh.Format("15:04:05")
	}
	if s.Err != nil {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + s.Err.Error())
	}
	info := lipgloss.JoinHorizontal(lipgloss.Left, props.Phases, "  ", status)

	list := zone.Mark(ListZoneID, styles.CardStyle.
		Width(max(props.Width-2, 1)).
		Render(props.ListView))

	footer := styles.FooterStyle.Render(s.LastEvent() + "\n[drag] Pull to refresh • [wheel] Scroll • [r] Reload • [q] Quit")

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		header,
		props.IndicatorView,
		info,
		list,
		footer,
	))
}
