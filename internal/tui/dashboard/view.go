package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current model state
func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	default:
		return m.renderListView()
	}
}

// renderListView renders the main component list view
func (m Model) renderListView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render(m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(m.renderComponentList())
	content.WriteString("\n")

	content.WriteString(m.renderFooter())

	return content.String()
}

// renderHeader renders the title plus the theme strip
func (m Model) renderHeader() string {
	title := titleStyle.Render("Gooey Dashboard")

	active := m.ActiveTheme()
	pills := make([]string, 0, len(m.themes))
	for i, name := range m.themes {
		label := fmt.Sprintf("%d:%s", i+1, name)
		if name == active {
			pills = append(pills, activeThemeStyle.Render(label))
		} else {
			pills = append(pills, themeStyle.Render(label))
		}
	}
	strip := "Themes:" + strings.Join(pills, "")
	if m.switching {
		strip += "  " + m.spinner.View() + " switching"
	}

	headerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		strip,
	)

	return headerStyle.Render(headerContent)
}

// renderComponentList renders the registered components
func (m Model) renderComponentList() string {
	if len(m.components) == 0 {
		return emptyStateStyle.Render("No components loaded")
	}

	var items []string
	for i, c := range m.components {
		line := fmt.Sprintf("%d. %s  %s  (%d attrs, %d templates)",
			i+1, c.Tag, c.Name, c.AttrCount, c.Templates)

		if i == m.cursor {
			items = append(items, selectedItemStyle.Render(line))
		} else {
			items = append(items, itemStyle.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderFooter renders the keybinding hints
func (m Model) renderFooter() string {
	hints := []string{
		"↑/↓ navigate",
		"enter details",
		"t next theme",
		"1-9 pick theme",
		"q quit",
	}
	return footerStyle.Render(strings.Join(hints, " • "))
}

// renderDetailView renders the selected component's descriptor summary
func (m Model) renderDetailView() string {
	c, ok := m.SelectedComponent()
	if !ok {
		return m.renderListView()
	}

	row := func(label, value string) string {
		return detailLabelStyle.Render(label) + detailValueStyle.Render(value)
	}

	themes := strings.Join(c.Themes, ", ")
	if themes == "" {
		themes = "(none declared)"
	}

	lines := []string{
		row("Tag", c.Tag),
		row("Name", c.Name),
		row("Attributes", fmt.Sprintf("%d", c.AttrCount)),
		row("Templates", fmt.Sprintf("%d", c.Templates)),
		row("Themes", themes),
		row("Active theme", m.ActiveTheme()),
	}

	body := detailSectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	footer := footerStyle.Render("enter/esc back • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Component Detail"),
		body,
		footer,
	)
}
