package dashboard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestUpdateNavigation(t *testing.T) {
	m := testModel(t, "gooey-card", "gooey-button")

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)
}

func TestUpdateQuit(t *testing.T) {
	m := testModel(t, "gooey-button")

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdateEnterOpensDetail(t *testing.T) {
	m := testModel(t, "gooey-button")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, ViewDetail, m.GetViewMode())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, ViewList, m.GetViewMode())
}

func TestUpdateThemeSwitchStartsCommand(t *testing.T) {
	m := testModel(t, "gooey-button")

	next, cmd := m.Update(keyMsg("t"))
	m = next.(Model)
	assert.True(t, m.IsSwitching())
	require.NotNil(t, cmd)
}

func TestUpdateThemeSwitchByNumber(t *testing.T) {
	m := testModel(t, "gooey-button")

	next, cmd := m.Update(keyMsg("2"))
	m = next.(Model)
	assert.True(t, m.IsSwitching())
	require.NotNil(t, cmd)

	// Number past the theme strip is a no-op.
	next, cmd = m.Update(keyMsg("9"))
	m = next.(Model)
	require.Nil(t, cmd)
}

func TestUpdateThemeApplied(t *testing.T) {
	m := testModel(t, "gooey-button")
	m.switching = true

	next, _ := m.Update(ThemeAppliedMsg{Theme: "dark"})
	m = next.(Model)
	assert.False(t, m.IsSwitching())
	assert.False(t, m.showError)
}

func TestUpdateThemeError(t *testing.T) {
	m := testModel(t, "gooey-button")
	m.switching = true

	next, _ := m.Update(ThemeErrorMsg{Theme: "dark", Error: errors.New("broken stylesheet")})
	m = next.(Model)
	assert.False(t, m.IsSwitching())
	assert.True(t, m.showError)
	assert.Contains(t, m.errorMsg, "broken stylesheet")
}

func TestSwitchThemeCmdCommits(t *testing.T) {
	m := testModel(t, "gooey-button")

	msg := switchThemeCmd(m.engine, "dark")()
	applied, ok := msg.(ThemeAppliedMsg)
	require.True(t, ok)
	assert.Equal(t, "dark", applied.Theme)
	assert.Equal(t, "dark", m.ActiveTheme())
}

func TestSwitchThemeCmdReportsUnknown(t *testing.T) {
	m := testModel(t, "gooey-button")

	msg := switchThemeCmd(m.engine, "midnight")()
	errMsg, ok := msg.(ThemeErrorMsg)
	require.True(t, ok)
	assert.Equal(t, "midnight", errMsg.Theme)
	assert.Error(t, errMsg.Error)
}
