package views

import (
	"refreshnow/ui/tui/state"
)

func RenderList(s state.AppState, props ViewProps) string {
	v := ListView{}
	return v.Render(s, props)
}
