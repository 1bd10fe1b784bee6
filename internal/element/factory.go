package element

import (
	"fmt"
	"sort"
	"sync"
)

// Factory constructs one element instance. Factories are bound at link time
// (typically from an init function in the widget's package) and keyed by
// tag; the bootstrap loader resolves a descriptor's tag to its factory
// instead of loading implementation modules dynamically.
type Factory func(deps Deps) (Element, error)

// Factories is a table of element constructors keyed by tag.
type Factories struct {
	mu sync.RWMutex
	m  map[string]Factory
}

// NewFactories returns an empty factory table.
func NewFactories() *Factories {
	return &Factories{m: make(map[string]Factory)}
}

// Register binds a factory to a tag. Rebinding an already-registered tag is
// an error; widget packages own their tags exclusively.
func (f *Factories) Register(tag string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("factory for %q is nil", tag)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.m[tag]; exists {
		return fmt.Errorf("factory for %q already registered", tag)
	}
	f.m[tag] = factory
	return nil
}

// Lookup returns the factory bound to a tag.
func (f *Factories) Lookup(tag string) (Factory, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	factory, ok := f.m[tag]
	return factory, ok
}

// Tags returns the bound tags in sorted order.
func (f *Factories) Tags() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tags := make([]string, 0, len(f.m))
	for tag := range f.m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

var defaultFactories = NewFactories()

// Register binds a factory in the default table. Widget packages call this
// from init so the bootstrap loader finds every linked-in component.
func Register(tag string, factory Factory) error {
	return defaultFactories.Register(tag, factory)
}

// DefaultFactories returns the process-wide factory table.
func DefaultFactories() *Factories {
	return defaultFactories
}

// Definitions is the set of defined custom elements: tags whose component
// passed the full bootstrap pipeline. It is the toolkit's analogue of the
// platform's custom element registry.
type Definitions struct {
	mu sync.RWMutex
	m  map[string]Factory
}

// NewDefinitions returns an empty definitions table.
func NewDefinitions() *Definitions {
	return &Definitions{m: make(map[string]Factory)}
}

// Define records a tag as fully registered, bound to its factory.
// Redefining a tag replaces the binding.
func (d *Definitions) Define(tag string, factory Factory) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m[tag] = factory
}

// Defined reports whether a tag completed registration.
func (d *Definitions) Defined(tag string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.m[tag]
	return ok
}

// New instantiates a defined element.
func (d *Definitions) New(tag string, deps Deps) (Element, error) {
	d.mu.RLock()
	factory, ok := d.m[tag]
	d.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("element %q is not defined", tag)
	}
	return factory(deps)
}

// Tags returns the defined tags in sorted order.
func (d *Definitions) Tags() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tags := make([]string, 0, len(d.m))
	for tag := range d.m {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
