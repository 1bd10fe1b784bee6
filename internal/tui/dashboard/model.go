package dashboard

import (
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/gooey-ui/gooey/internal/registry"
	"github.com/gooey-ui/gooey/internal/theme"
)

// Component is one registered component row in the list view
type Component struct {
	Tag       string
	Name      string
	AttrCount int
	Templates int
	Themes    []string
}

// Model is the main dashboard model
type Model struct {
	// Core data
	components []Component
	themes     []string
	registry   *registry.Registry
	engine     *theme.Engine

	// UI state
	viewMode ViewMode
	cursor   int

	// Component state
	spinner spinner.Model

	// Operation state
	switching bool
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int
}

// NewModel creates a new dashboard model from the loaded registries
func NewModel(reg *registry.Registry, engine *theme.Engine) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		registry: reg,
		engine:   engine,
		viewMode: ViewList,
		spinner:  s,
		width:    80,
		height:   24,
	}

	for _, tag := range reg.Tags() {
		d, ok := reg.Descriptor(tag)
		if !ok {
			continue
		}
		m.components = append(m.components, Component{
			Tag:       tag,
			Name:      d.Name,
			AttrCount: len(d.Attributes),
			Templates: len(d.Templates),
			Themes:    d.Themes.Available,
		})
	}
	sort.Slice(m.components, func(i, j int) bool {
		return m.components[i].Tag < m.components[j].Tag
	})

	// The base theme is implicit in the engine; the strip still shows it.
	m.themes = engine.Themes()
	if !lo.Contains(m.themes, theme.Base) {
		m.themes = append(m.themes, theme.Base)
	}
	sort.Strings(m.themes)

	return m
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Helper Methods

// ActiveTheme returns the name of the theme currently applied
func (m *Model) ActiveTheme() string {
	return m.engine.ActiveTheme()
}

// SelectedComponent returns the component under the cursor
func (m *Model) SelectedComponent() (Component, bool) {
	if m.cursor < 0 || m.cursor >= len(m.components) {
		return Component{}, false
	}
	return m.components[m.cursor], true
}

// MoveCursorUp moves cursor up with wrapping
func (m *Model) MoveCursorUp() {
	if len(m.components) == 0 {
		return
	}
	m.cursor--
	if m.cursor < 0 {
		m.cursor = len(m.components) - 1
	}
}

// MoveCursorDown moves cursor down with wrapping
func (m *Model) MoveCursorDown() {
	if len(m.components) == 0 {
		return
	}
	m.cursor++
	if m.cursor >= len(m.components) {
		m.cursor = 0
	}
}

// NextTheme returns the registered theme after the active one, cycling
func (m *Model) NextTheme() (string, bool) {
	if len(m.themes) == 0 {
		return "", false
	}
	active := m.ActiveTheme()
	for i, name := range m.themes {
		if name == active {
			return m.themes[(i+1)%len(m.themes)], true
		}
	}
	return m.themes[0], true
}

// ThemeAt returns the registered theme at a 1-based index
func (m *Model) ThemeAt(index int) (string, bool) {
	if index < 1 || index > len(m.themes) {
		return "", false
	}
	return m.themes[index-1], true
}

// GetViewMode returns the current view mode
func (m *Model) GetViewMode() ViewMode {
	return m.viewMode
}

// IsSwitching reports whether a theme switch is in flight
func (m *Model) IsSwitching() bool {
	return m.switching
}
