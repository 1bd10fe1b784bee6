package dashboard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		ApplyMaxWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ThemeAppliedMsg:
		m.switching = false
		m.showError = false
		m.errorMsg = ""
		return m, nil

	case ThemeErrorMsg:
		m.switching = false
		m.showError = true
		m.errorMsg = fmt.Sprintf("Theme %q rejected: %s", msg.Theme, msg.Error)
		return m, nil
	}

	return m, nil
}

// handleKeyPress routes key events for the current view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.viewMode == ViewDetail {
			m.viewMode = ViewList
			return m, nil
		}
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil
	}

	if m.viewMode == ViewDetail {
		// Detail view only navigates back; all other keys are ignored.
		if key == "enter" {
			m.viewMode = ViewList
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "enter":
		if _, ok := m.SelectedComponent(); ok {
			m.viewMode = ViewDetail
		}
		return m, nil

	case "t", "tab":
		if m.switching {
			return m, nil
		}
		next, ok := m.NextTheme()
		if !ok || next == m.ActiveTheme() {
			return m, nil
		}
		m.switching = true
		return m, tea.Batch(switchThemeCmd(m.engine, next), m.spinner.Tick)
	}

	// Number keys jump straight to a theme by its position in the header.
	if n, err := strconv.Atoi(key); err == nil {
		name, ok := m.ThemeAt(n)
		if !ok || m.switching || name == m.ActiveTheme() {
			return m, nil
		}
		m.switching = true
		return m, tea.Batch(switchThemeCmd(m.engine, name), m.spinner.Tick)
	}

	return m, nil
}
