// Package bootstrap assembles a runtime from a component manifest: it loads
// and validates every listed descriptor, fetches the assets each component
// needs, and commits fully constructed components into the shared registry.
// Failures are collected per component so one broken entry never blocks the
// rest of the manifest.
package bootstrap

import (
	"context"
	"fmt"
	"sync"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/descriptor"
	"github.com/gooey-ui/gooey/internal/element"
	"github.com/gooey-ui/gooey/internal/event"
	"github.com/gooey-ui/gooey/internal/logger"
	"github.com/gooey-ui/gooey/internal/manifest"
	"github.com/gooey-ui/gooey/internal/registry"
	"github.com/gooey-ui/gooey/internal/theme"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// Pipeline phases, reported on BootstrapFailure entries.
const (
	PhaseDescriptor = "descriptor"
	PhaseTemplate   = "template"
	PhaseFactory    = "factory"
	PhaseTheme      = "theme"
)

// Lifecycle events fired on the loader's channel once Run completes.
const (
	EventReady = "ready"
	EventError = "error"
)

// Options configures a bootstrap pass.
type Options struct {
	Manifest *manifest.Manifest
	Fetcher  descriptor.Fetcher

	// Factories maps component tags to constructors. Defaults to the
	// package-level factory table populated by element.Register.
	Factories *element.Factories

	// FallbackFactory, when set, constructs components whose tag has no
	// registered factory. Hosts that only inspect components (the CLI,
	// the dashboard) use this to avoid registering a constructor per tag.
	FallbackFactory func(tag string) element.Factory

	// DocumentScope receives theme-level stylesheets. Defaults to a fresh
	// document scope.
	DocumentScope *css.Scope

	Log *logger.Logger
}

// Runtime is the assembled result of a successful (or partially successful)
// bootstrap: the shared registries and engines that components draw on.
type Runtime struct {
	Registry    *registry.Registry
	Engine      *theme.Engine
	Loader      *descriptor.Loader
	Definitions *element.Definitions
}

// Deps returns the dependency bundle handed to element constructors.
func (r *Runtime) Deps() element.Deps {
	return element.Deps{Registry: r.Registry, Engine: r.Engine}
}

// NewElement instantiates a bootstrapped component by tag.
func (r *Runtime) NewElement(tag string) (element.Element, error) {
	deps := r.Deps()
	return r.Definitions.New(tag, deps)
}

// Loader runs the bootstrap pipeline exactly once and caches the outcome.
// Repeat calls to Run observe the first pass's runtime and error.
type Loader struct {
	opts    Options
	channel *event.Channel

	once    sync.Once
	runtime *Runtime
	err     error
}

// NewLoader constructs a Loader. Run does the actual work.
func NewLoader(opts Options) *Loader {
	if opts.Factories == nil {
		opts.Factories = element.DefaultFactories()
	}
	if opts.DocumentScope == nil {
		opts.DocumentScope = css.NewDocumentScope()
	}
	return &Loader{
		opts:    opts,
		channel: event.New(EventReady, EventError),
	}
}

// Channel exposes the loader's lifecycle channel so callers can subscribe
// to ready and error notifications before calling Run.
func (l *Loader) Channel() *event.Channel {
	return l.channel
}

// Run walks the manifest and assembles the runtime. Every entry is
// attempted; failures are aggregated into a single BootstrapError while the
// components that loaded cleanly remain registered and usable. The returned
// Runtime is non-nil even when err is.
func (l *Loader) Run(ctx context.Context) (*Runtime, error) {
	l.once.Do(func() {
		l.runtime, l.err = l.assemble(ctx)
		if l.err != nil {
			_, _ = l.channel.Fire(EventError, l.err)
			return
		}
		_, _ = l.channel.Fire(EventReady, l.runtime)
	})
	return l.runtime, l.err
}

func (l *Loader) assemble(ctx context.Context) (*Runtime, error) {
	log := l.opts.Log
	reg := registry.New()
	dl := descriptor.NewLoader(l.opts.Fetcher, log)
	engine := theme.New(reg, dl, l.opts.DocumentScope, log)
	defs := element.NewDefinitions()

	rt := &Runtime{
		Registry:    reg,
		Engine:      engine,
		Loader:      dl,
		Definitions: defs,
	}

	var failures []gooeyerrors.BootstrapFailure
	if l.opts.Manifest != nil {
		for _, pkg := range l.opts.Manifest.Packages {
			for _, el := range pkg.Elements {
				if f := l.loadComponent(ctx, rt, pkg, el); f != nil {
					failures = append(failures, *f)
				}
			}
		}
		for _, docPath := range l.opts.Manifest.Themes {
			if f := l.loadTheme(ctx, rt, docPath); f != nil {
				failures = append(failures, *f)
			}
		}
	}

	if len(failures) > 0 {
		return rt, gooeyerrors.NewBootstrapError(failures)
	}
	log.Info("bootstrap complete")
	return rt, nil
}

// loadComponent runs the per-component pipeline: descriptor, templates,
// factory lookup, then a single commit into the registries. Nothing is
// registered for a component whose pipeline failed, so a half-loaded
// component can never be constructed. The default theme stylesheet is
// fetched eagerly but best effort; a missing stylesheet only degrades
// styling.
func (l *Loader) loadComponent(ctx context.Context, rt *Runtime, pkg manifest.Package, el manifest.ElementRef) *gooeyerrors.BootstrapFailure {
	name := pkg.Qualified(el)
	assetPath := pkg.Path(el)
	log := l.opts.Log.WithComponent(name)

	d, err := rt.Loader.LoadAndValidate(ctx, assetPath)
	if err != nil {
		log.Error(err, "descriptor rejected")
		return &gooeyerrors.BootstrapFailure{Component: name, Phase: PhaseDescriptor, Err: err}
	}

	templates := make(map[string]string, len(d.Templates))
	for _, ref := range d.Templates {
		fragment, err := rt.Loader.LoadTemplate(ctx, assetPath, ref.File)
		if err != nil {
			log.Error(err, "template fetch failed")
			return &gooeyerrors.BootstrapFailure{Component: name, Phase: PhaseTemplate, Err: err}
		}
		templates[ref.ID] = fragment
	}

	factory, ok := l.opts.Factories.Lookup(d.TagName)
	if !ok && l.opts.FallbackFactory != nil {
		factory, ok = l.opts.FallbackFactory(d.TagName), true
	}
	if !ok {
		err := fmt.Errorf("no factory registered for tag %q", d.TagName)
		log.Error(err, "no factory for tag")
		return &gooeyerrors.BootstrapFailure{Component: name, Phase: PhaseFactory, Err: err}
	}

	rt.Registry.Register(d.TagName, d)
	rt.Registry.SetPath(d.TagName, assetPath)
	rt.Registry.SetTemplates(d.TagName, templates)
	rt.Definitions.Define(d.TagName, factory)

	if d.Themes.Default != "" {
		sheet, err := rt.Loader.LoadThemeCSS(ctx, assetPath, d.Themes.Default)
		if err != nil {
			log.Warn("default theme stylesheet unavailable")
		} else {
			rt.Registry.SetThemeCSS(d.TagName, sheet)
		}
	}

	log.Debug("component registered")
	return nil
}

// loadTheme registers one declarative theme document. Theme failures are
// collected alongside component failures; a bad theme never blocks the
// components that loaded before it.
func (l *Loader) loadTheme(ctx context.Context, rt *Runtime, docPath string) *gooeyerrors.BootstrapFailure {
	data, err := l.opts.Fetcher.Fetch(ctx, docPath)
	if err != nil {
		return &gooeyerrors.BootstrapFailure{Component: docPath, Phase: PhaseTheme, Err: err}
	}
	doc, err := theme.ParseDocument(data)
	if err != nil {
		return &gooeyerrors.BootstrapFailure{Component: docPath, Phase: PhaseTheme, Err: err}
	}
	if err := rt.Engine.RegisterDocument(ctx, l.opts.Fetcher, doc); err != nil {
		return &gooeyerrors.BootstrapFailure{Component: doc.Name, Phase: PhaseTheme, Err: err}
	}
	return nil
}
