package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/worksheetai/internal/router"
	formscreen "github.com/abhisek/worksheetai/internal/screens/form"
	"github.com/abhisek/worksheetai/internal/screens/welcome"
)

func TestNewAppModel_StartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{})
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
}

func TestNewAppModel_SkipWelcome(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	_, ok := m.router.Active().(*formscreen.FormScreen)
	assert.True(t, ok)
}

func TestAppModel_WelcomeHandsOverToForm(t *testing.T) {
	m := newAppModel(Options{})
	model, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok)

	model, _ = model.Update(msg)
	app := model.(AppModel)
	_, ok = app.router.Active().(*formscreen.FormScreen)
	assert.True(t, ok)
	assert.Equal(t, 1, app.router.Depth())
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestAppModel_EscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestHints(t *testing.T) {
	m := newAppModel(Options{})
	hints := m.hints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Any key", hints[0].Key)

	m = newAppModel(Options{SkipWelcome: true})
	assert.Equal(t, "Tab/↑↓", m.hints()[0].Key)
}
