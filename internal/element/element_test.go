package element

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/descriptor"
	"github.com/gooey-ui/gooey/internal/registry"
	"github.com/gooey-ui/gooey/internal/theme"
)

func float(v float64) *float64 { return &v }

func testDeps(t *testing.T) Deps {
	t.Helper()

	reg := registry.New()
	reg.Register("gooey-button", &descriptor.Descriptor{
		Name:    "Button",
		TagName: "gooey-button",
		Attributes: map[string]descriptor.AttributeSchema{
			"label": {Kind: descriptor.KindString},
			"size":  {Kind: descriptor.KindNumber, Min: float(1), Max: float(10)},
		},
		Themes: descriptor.ThemeInfo{Default: theme.Base, Available: []string{theme.Base}},
	})

	engine := theme.New(reg, nil, css.NewDocumentScope(), nil)
	return Deps{Registry: reg, Engine: engine}
}

type recordingObserver struct {
	calls []observedChange
}

type observedChange struct {
	name, oldRaw, newRaw string
	value                any
}

func (r *recordingObserver) AttributeChanged(name, oldRaw, newRaw string, value any) {
	r.calls = append(r.calls, observedChange{name, oldRaw, newRaw, value})
}

func TestSetAttributeValidatesThenCoercesThenNotifies(t *testing.T) {
	deps := testDeps(t)
	b := New("gooey-button", deps)
	defer b.Release()

	obs := &recordingObserver{}
	b.SetObserver(obs)

	var reported []AttributeError
	_, err := b.Channel().On(EventAttributeError, func(_ string, payload any) {
		reported = append(reported, payload.(AttributeError))
	})
	require.NoError(t, err)

	b.SetAttribute("size", "42") // out of range

	// the invalid value is reported...
	require.Len(t, reported, 1)
	assert.Equal(t, "size", reported[0].Name)
	assert.Error(t, reported[0].Err)

	// ...but still coerced, cached, and delivered to the observer
	value, ok := b.TypedAttribute("size")
	require.True(t, ok)
	assert.Equal(t, 42.0, value)

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observedChange{"size", "", "42", 42.0}, obs.calls[0])

	raw, ok := b.Attribute("size")
	require.True(t, ok)
	assert.Equal(t, "42", raw)
}

func TestUnobservedAttributeSkipsObserver(t *testing.T) {
	deps := testDeps(t)
	b := New("gooey-button", deps)
	defer b.Release()

	obs := &recordingObserver{}
	b.SetObserver(obs)

	b.SetAttribute("data-custom", "anything")

	assert.Empty(t, obs.calls, "undeclared attributes do not trigger the hook")
	raw, ok := b.Attribute("data-custom")
	require.True(t, ok)
	assert.Equal(t, "anything", raw)
}

func TestRemoveAttributeNotifiesObserver(t *testing.T) {
	deps := testDeps(t)
	b := New("gooey-button", deps)
	defer b.Release()

	b.SetAttribute("label", "Save")

	obs := &recordingObserver{}
	b.SetObserver(obs)
	b.RemoveAttribute("label")

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observedChange{"label", "Save", "", nil}, obs.calls[0])

	_, ok := b.Attribute("label")
	assert.False(t, ok)
	_, ok = b.TypedAttribute("label")
	assert.False(t, ok)
}

func TestNewInjectsCachedDefaultThemeCSS(t *testing.T) {
	deps := testDeps(t)
	sheet := css.MustCompile(":host { --accent: blue; }")
	deps.Registry.SetThemeCSS("gooey-button", sheet)

	b := New("gooey-button", deps)
	defer b.Release()

	assert.True(t, b.Scope().Contains(sheet))
	assert.True(t, b.Scope().Isolated())
}

func TestNewRegistersForThemeBroadcast(t *testing.T) {
	deps := testDeps(t)

	override := css.MustCompile(":host { --accent: white; }")
	deps.Engine.RegisterThemeConfig("dark", theme.Definition{
		Overrides: map[string]*css.Stylesheet{"gooey-button": override},
	})

	b := New("gooey-button", deps)
	require.NoError(t, deps.Engine.SetTheme(context.Background(), "dark"))
	assert.True(t, b.Scope().Contains(override))

	b.Release()
	assert.Empty(t, deps.Engine.LiveInstances())
}

func TestNewAppliesActiveThemeOnLateMount(t *testing.T) {
	deps := testDeps(t)

	override := css.MustCompile(":host { --accent: white; }")
	deps.Engine.RegisterThemeConfig("dark", theme.Definition{
		Overrides: map[string]*css.Stylesheet{"gooey-button": override},
	})
	require.NoError(t, deps.Engine.SetTheme(context.Background(), "dark"))

	// constructed after the switch
	b := New("gooey-button", deps)
	defer b.Release()

	assert.True(t, b.Scope().Contains(override))
}

func TestContainerReleaseCascades(t *testing.T) {
	deps := testDeps(t)

	c := NewContainer("gooey-panel", deps)
	child := New("gooey-button", deps)
	c.Add(child)

	require.Len(t, deps.Engine.LiveInstances(), 2)
	assert.Equal(t, []Element{child}, c.Children())

	c.Release()
	assert.Empty(t, deps.Engine.LiveInstances())
}

func TestContainerRemove(t *testing.T) {
	deps := testDeps(t)

	c := NewContainer("gooey-panel", deps)
	child := New("gooey-button", deps)
	c.Add(child)

	assert.True(t, c.Remove(child))
	assert.False(t, c.Remove(child))
	assert.Empty(t, c.Children())
}

func TestFactoriesRejectDuplicateAndNil(t *testing.T) {
	f := NewFactories()

	factory := func(deps Deps) (Element, error) { return New("gooey-button", deps), nil }
	require.NoError(t, f.Register("gooey-button", factory))
	require.Error(t, f.Register("gooey-button", factory))
	require.Error(t, f.Register("gooey-menu", nil))

	_, ok := f.Lookup("gooey-button")
	assert.True(t, ok)
	assert.Equal(t, []string{"gooey-button"}, f.Tags())
}

func TestDefinitionsInstantiate(t *testing.T) {
	deps := testDeps(t)
	defs := NewDefinitions()

	assert.False(t, defs.Defined("gooey-button"))
	defs.Define("gooey-button", func(d Deps) (Element, error) { return New("gooey-button", d), nil })
	assert.True(t, defs.Defined("gooey-button"))

	el, err := defs.New("gooey-button", deps)
	require.NoError(t, err)
	defer el.Release()
	assert.Equal(t, "gooey-button", el.Tag())

	_, err = defs.New("gooey-ghost", deps)
	require.Error(t, err)
}
