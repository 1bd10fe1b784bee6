package theme

import (
	"context"
	"strings"
	"sync"
	"weak"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/descriptor"
	"github.com/gooey-ui/gooey/internal/logger"
	"github.com/gooey-ui/gooey/internal/registry"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// Engine owns the active theme name, the registry of theme definitions, and
// the weakly tracked set of live element instances. One engine exists per
// runtime; it is constructed explicitly and passed by reference.
type Engine struct {
	log      *logger.Logger
	registry *registry.Registry
	loader   *descriptor.Loader
	doc      *css.Scope

	mu              sync.Mutex
	defs            map[string]*Definition
	active          string
	activeSheets    []*css.Stylesheet
	activeOverrides map[string]*css.Stylesheet
	instances       []weak.Pointer[Instance]
	registrations   int
}

// New constructs an engine over the given component registry, metadata
// loader, and document-level style scope. The initial active theme is
// "base".
func New(reg *registry.Registry, loader *descriptor.Loader, doc *css.Scope, log *logger.Logger) *Engine {
	if doc == nil {
		doc = css.NewDocumentScope()
	}
	return &Engine{
		log:             log,
		registry:        reg,
		loader:          loader,
		doc:             doc,
		defs:            make(map[string]*Definition),
		active:          Base,
		activeOverrides: make(map[string]*css.Stylesheet),
	}
}

// ActiveTheme returns the name of the currently applied theme.
func (e *Engine) ActiveTheme() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// DocumentScope returns the document-level style scope the engine installs
// theme sheets into.
func (e *Engine) DocumentScope() *css.Scope {
	return e.doc
}

// RegisterThemeConfig upserts a theme definition, merging with any
// previously registered partial definition for the same name. Themes may be
// declared incrementally from multiple sources.
func (e *Engine) RegisterThemeConfig(name string, def Definition) {
	if name == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	existing, ok := e.defs[name]
	if !ok {
		existing = &Definition{}
		e.defs[name] = existing
	}
	existing.merge(def)
}

// Registered reports whether a theme name has a definition.
func (e *Engine) Registered(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.defs[name]
	return ok
}

// Definition returns a copy of a registered theme's definition.
func (e *Engine) Definition(name string) (Definition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	def, ok := e.defs[name]
	if !ok {
		return Definition{}, false
	}
	return *def, true
}

// Themes returns the registered theme names, unsorted.
func (e *Engine) Themes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.defs))
	for name := range e.defs {
		names = append(names, name)
	}
	return names
}

// ResolveChain returns the extends chain for a theme, ancestor-first. A
// cycle truncates the chain at the point of recurrence; a reference to an
// unregistered ancestor truncates below it. Both are logged, never fatal.
func (e *Engine) ResolveChain(name string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolveChainLocked(name)
}

func (e *Engine) resolveChainLocked(name string) []string {
	var chain []string
	visited := make(map[string]bool)

	for cur := name; cur != "" && cur != Base; {
		if visited[cur] {
			e.log.Warn("theme extends cycle detected, truncating chain: " + strings.Join(append(chain, cur), " -> "))
			break
		}
		visited[cur] = true

		def, ok := e.defs[cur]
		if !ok {
			e.log.Warn("theme extends unregistered theme " + cur + ", truncating chain")
			break
		}

		chain = append([]string{cur}, chain...)
		cur = def.Extends
	}

	return chain
}

// SetTheme switches the active theme. The switch is staged first — the full
// extends chain is resolved and every stylesheet compiled — and committed
// only if staging succeeds, so a failure partway leaves the previous theme
// fully and consistently applied.
func (e *Engine) SetTheme(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == e.active {
		return nil
	}
	if name != Base {
		if _, ok := e.defs[name]; !ok {
			return gooeyerrors.NewUnknownThemeError(name)
		}
	}

	// Staging: walk the chain ancestor-first, compiling on demand and
	// merging overrides with descendant-wins precedence. Nothing is applied
	// yet; any error aborts with the previous theme intact.
	chain := e.resolveChainLocked(name)
	stagedSheets := make([]*css.Stylesheet, 0, len(chain))
	stagedOverrides := make(map[string]*css.Stylesheet)

	for _, ancestor := range chain {
		def := e.defs[ancestor]

		sheet := def.Sheet
		if sheet == nil && def.CSSText != "" {
			compiled, err := css.Compile(def.CSSText)
			if err != nil {
				return err
			}
			def.Sheet = compiled
			sheet = compiled
		}
		if sheet != nil {
			stagedSheets = append(stagedSheets, sheet)
		}

		for tag, override := range def.Overrides {
			stagedOverrides[tag] = override
		}
	}

	// Commit: strip the previous theme, then install the staged sets.
	live := e.liveLocked()

	for _, sheet := range e.activeSheets {
		e.doc.Remove(sheet)
	}
	for _, inst := range live {
		if override, ok := e.activeOverrides[inst.Tag]; ok {
			inst.Scope.Remove(override)
		}
	}

	for _, sheet := range stagedSheets {
		e.doc.Inject(sheet)
	}
	for _, inst := range live {
		if override, ok := stagedOverrides[inst.Tag]; ok {
			inst.Scope.Inject(override)
		}
	}

	e.active = name
	e.activeSheets = stagedSheets
	e.activeOverrides = stagedOverrides

	e.log.WithFields(map[string]any{"theme": name, "chain": chain}).Info("theme activated")
	return nil
}

// ApplyToInstance applies the active theme's override to a single element,
// for elements constructed after activation. When the active override map
// has no entry for the tag but the component's descriptor declares the
// active theme as available, the override is loaded lazily and cached so
// late-registered components pick up the theme without eager-loading every
// override at boot.
func (e *Engine) ApplyToInstance(ctx context.Context, inst *Instance) error {
	if inst == nil {
		return nil
	}

	e.mu.Lock()
	active := e.active
	if override, ok := e.activeOverrides[inst.Tag]; ok {
		e.mu.Unlock()
		inst.Scope.Inject(override)
		return nil
	}
	e.mu.Unlock()

	if active == Base {
		return nil
	}

	d, ok := e.registry.Descriptor(inst.Tag)
	if !ok || !d.SupportsTheme(active) {
		return nil
	}
	path, ok := e.registry.Path(inst.Tag)
	if !ok {
		return nil
	}

	// Engines built without a loader (inspection-only hosts) cannot fetch
	// late overrides.
	if e.loader == nil {
		e.log.WithComponent(inst.Tag).Warn("no loader configured, skipping late theme override")
		return nil
	}

	override, err := e.loader.LoadThemeCSS(ctx, path, active)
	if err != nil {
		e.log.WithComponent(inst.Tag).Error(err, "late theme override load failed")
		return err
	}

	e.mu.Lock()
	// The theme may have changed while the fetch was in flight; only cache
	// and apply if it is still the one we loaded for.
	if e.active == active {
		e.activeOverrides[inst.Tag] = override
		if def, ok := e.defs[active]; ok {
			if def.Overrides == nil {
				def.Overrides = make(map[string]*css.Stylesheet)
			}
			def.Overrides[inst.Tag] = override
		}
		e.mu.Unlock()
		inst.Scope.Inject(override)
		return nil
	}
	e.mu.Unlock()
	return nil
}

// DiscoverOverrides loads the per-component override stylesheet of every
// registered component that declares the theme as available. Lookups are
// mutually independent and run in parallel; a missing override for one
// component is logged and skipped, never fatal to discovery as a whole.
func (e *Engine) DiscoverOverrides(ctx context.Context, theme string) map[string]*css.Stylesheet {
	found := make(map[string]*css.Stylesheet)
	if e.loader == nil {
		return found
	}
	tags := e.registry.Tags()

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, tag := range tags {
		d, ok := e.registry.Descriptor(tag)
		if !ok || !d.SupportsTheme(theme) {
			continue
		}
		path, ok := e.registry.Path(tag)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(tag, path string) {
			defer wg.Done()

			sheet, err := e.loader.LoadThemeCSS(ctx, path, theme)
			if err != nil {
				e.log.WithComponent(tag).Warn("override discovery skipped: " + err.Error())
				return
			}

			mu.Lock()
			found[tag] = sheet
			mu.Unlock()
		}(tag, path)
	}

	wg.Wait()
	return found
}
