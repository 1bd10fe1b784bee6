package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gooey-ui/gooey/internal/theme"
)

// switchThemeCmd applies a theme asynchronously. The engine stages and
// commits atomically, so an error here means the previous theme is still
// fully applied.
func switchThemeCmd(engine *theme.Engine, name string) tea.Cmd {
	return func() tea.Msg {
		if err := engine.SetTheme(context.Background(), name); err != nil {
			return ThemeErrorMsg{Theme: name, Error: err}
		}
		return ThemeAppliedMsg{Theme: name}
	}
}
