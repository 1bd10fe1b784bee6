package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gooey-ui/gooey/internal/descriptor"
	"github.com/gooey-ui/gooey/internal/element"
	"github.com/gooey-ui/gooey/internal/manifest"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

func simpleDescriptor(name, tag string) string {
	return fmt.Sprintf(`
name: %s
tagName: %s
script: %s.js
attributes: {}
templates:
  - id: body
    file: body.html
themes:
  default: base
  available: [base]
`, name, tag, tag)
}

func testFactories(t *testing.T, tags ...string) *element.Factories {
	t.Helper()
	factories := element.NewFactories()
	for _, tag := range tags {
		tag := tag
		require.NoError(t, factories.Register(tag, func(deps element.Deps) (element.Element, error) {
			return element.New(tag, deps), nil
		}))
	}
	return factories
}

func testManifest(names ...string) *manifest.Manifest {
	pkg := manifest.Package{Name: "widgets"}
	for _, name := range names {
		pkg.Elements = append(pkg.Elements, manifest.ElementRef{Name: name})
	}
	return &manifest.Manifest{Packages: []manifest.Package{pkg}}
}

func writeComponent(t *testing.T, fsys afero.Fs, dir, doc string, extra map[string]string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, dir+"/"+descriptor.DescriptorFile, []byte(doc), 0o644))
	for name, content := range extra {
		require.NoError(t, afero.WriteFile(fsys, dir+"/"+name, []byte(content), 0o644))
	}
}

func TestRunRegistersEveryManifestEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html":       "<button></button>",
		"themes/base.css": ":host { --accent: blue; }",
	})
	writeComponent(t, fsys, "widgets/card", simpleDescriptor("Card", "gooey-card"), map[string]string{
		"body.html":       "<section></section>",
		"themes/base.css": ":host { --pad: 8px; }",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button", "card"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button", "gooey-card"),
	})

	rt, err := loader.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, rt.Definitions.Defined("gooey-button"))
	assert.True(t, rt.Definitions.Defined("gooey-card"))
	assert.Equal(t, 2, rt.Registry.Len())

	tpl, ok := rt.Registry.Template("gooey-button", "body")
	require.True(t, ok)
	assert.Equal(t, "<button></button>", tpl)

	sheet, ok := rt.Registry.ThemeCSS("gooey-card")
	require.True(t, ok)
	if prop, found := sheet.Prop("--pad"); assert.True(t, found) {
		assert.Equal(t, "8px", prop)
	}

	el, err := rt.NewElement("gooey-button")
	require.NoError(t, err)
	assert.Equal(t, "gooey-button", el.Tag())
}

func TestRunSkipsBrokenComponentAndKeepsTheRest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})
	// slider's descriptor is malformed, so it must never reach the registry.
	writeComponent(t, fsys, "widgets/slider", "tagName: [broken", nil)
	writeComponent(t, fsys, "widgets/card", simpleDescriptor("Card", "gooey-card"), map[string]string{
		"body.html": "<section></section>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button", "slider", "card"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button", "gooey-card"),
	})

	rt, err := loader.Run(context.Background())
	require.Error(t, err)

	var boot *gooeyerrors.BootstrapError
	require.True(t, stderrors.As(err, &boot))
	require.Len(t, boot.Failures, 1)
	assert.Equal(t, "widgets.slider", boot.Failures[0].Component)
	assert.Equal(t, PhaseDescriptor, boot.Failures[0].Phase)

	assert.True(t, rt.Definitions.Defined("gooey-button"))
	assert.True(t, rt.Definitions.Defined("gooey-card"))
	assert.False(t, rt.Definitions.Defined("gooey-slider"))
	assert.Equal(t, 2, rt.Registry.Len())
}

func TestRunTreatsMissingTemplateAsFatal(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), nil)

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	rt, err := loader.Run(context.Background())
	require.Error(t, err)

	var boot *gooeyerrors.BootstrapError
	require.True(t, stderrors.As(err, &boot))
	require.Len(t, boot.Failures, 1)
	assert.Equal(t, PhaseTemplate, boot.Failures[0].Phase)

	_, ok := rt.Registry.Descriptor("gooey-button")
	assert.False(t, ok, "component with missing template must not be registered")
}

func TestRunRequiresAFactory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: element.NewFactories(),
	})

	_, err := loader.Run(context.Background())
	var boot *gooeyerrors.BootstrapError
	require.True(t, stderrors.As(err, &boot))
	require.Len(t, boot.Failures, 1)
	assert.Equal(t, PhaseFactory, boot.Failures[0].Phase)
}

func TestRunToleratesMissingDefaultThemeCSS(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	rt, err := loader.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rt.Definitions.Defined("gooey-button"))
	_, ok := rt.Registry.ThemeCSS("gooey-button")
	assert.False(t, ok)
}

func TestRunIsIdempotent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	first, err1 := loader.Run(context.Background())
	second, err2 := loader.Run(context.Background())
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Same(t, first, second)
}

func TestRunBroadcastsLifecycleEvents(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	var readyPayload any
	_, err := loader.Channel().On(EventReady, func(_ string, payload any) {
		readyPayload = payload
	})
	require.NoError(t, err)

	rt, err := loader.Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, rt, readyPayload)
}

func TestRunRegistersManifestThemes(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})
	require.NoError(t, afero.WriteFile(fsys, "themes/dark.yaml", []byte(`
name: dark
extends: base
css: ":root { --surface: #111; }"
active: true
`), 0o644))

	m := testManifest("button")
	m.Themes = []string{"themes/dark.yaml"}

	loader := NewLoader(Options{
		Manifest:  m,
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	rt, err := loader.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, rt.Engine.Registered("dark"))
	assert.Equal(t, "dark", rt.Engine.ActiveTheme())
}

func TestRunCollectsThemeDocumentFailures(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	m := testManifest("button")
	m.Themes = []string{"themes/missing.yaml"}

	loader := NewLoader(Options{
		Manifest:  m,
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: testFactories(t, "gooey-button"),
	})

	rt, err := loader.Run(context.Background())
	var boot *gooeyerrors.BootstrapError
	require.True(t, stderrors.As(err, &boot))
	require.Len(t, boot.Failures, 1)
	assert.Equal(t, PhaseTheme, boot.Failures[0].Phase)
	assert.True(t, rt.Definitions.Defined("gooey-button"))
}

func TestRunUsesFallbackFactory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/button", simpleDescriptor("Button", "gooey-button"), map[string]string{
		"body.html": "<button></button>",
	})

	loader := NewLoader(Options{
		Manifest:  testManifest("button"),
		Fetcher:   descriptor.NewFSFetcher(fsys, ""),
		Factories: element.NewFactories(),
		FallbackFactory: func(tag string) element.Factory {
			return func(deps element.Deps) (element.Element, error) {
				return element.New(tag, deps), nil
			}
		},
	})

	rt, err := loader.Run(context.Background())
	require.NoError(t, err)

	el, err := rt.NewElement("gooey-button")
	require.NoError(t, err)
	assert.Equal(t, "gooey-button", el.Tag())
}

func TestRunBroadcastsErrorOnFailure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeComponent(t, fsys, "widgets/slider", "tagName: [broken", nil)

	loader := NewLoader(Options{
		Manifest: testManifest("slider"),
		Fetcher:  descriptor.NewFSFetcher(fsys, ""),
	})

	var errPayload any
	_, err := loader.Channel().On(EventError, func(_ string, payload any) {
		errPayload = payload
	})
	require.NoError(t, err)

	_, runErr := loader.Run(context.Background())
	require.Error(t, runErr)
	assert.Equal(t, runErr, errPayload)
}
