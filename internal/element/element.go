// Package element provides the base types every widget builds on: an
// element base that wires descriptor-driven attribute validation, theming,
// and the validated event channel together, plus the factory and
// defined-element tables the bootstrap loader populates.
package element

import (
	"context"
	"sync"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/event"
	"github.com/gooey-ui/gooey/internal/logger"
	"github.com/gooey-ui/gooey/internal/registry"
	"github.com/gooey-ui/gooey/internal/theme"
)

// EventAttributeError is fired on an element's channel whenever an
// attribute value fails its declared constraints. The value is still
// coerced and stored; the event is a report, not a veto.
const EventAttributeError = "attributeerror"

// AttributeError is the payload of an EventAttributeError.
type AttributeError struct {
	Name  string
	Value string
	Err   error
}

// Element is the minimal surface shared by every widget.
type Element interface {
	Tag() string
	Channel() *event.Channel
	Scope() *css.Scope
	Release()
}

// AttributeObserver is the extension point concrete widgets implement to
// react to observed attribute changes. The base always runs validation and
// coercion first; the observer only ever sees already-coerced values.
type AttributeObserver interface {
	AttributeChanged(name, oldRaw, newRaw string, value any)
}

// Deps carries the shared runtime collaborators an element needs. The same
// Deps value is handed to every factory during bootstrap.
type Deps struct {
	Registry *registry.Registry
	Engine   *theme.Engine
	Log      *logger.Logger
	// NoAdoption forces the element's isolated scope onto the literal
	// style-injection fallback path.
	NoAdoption bool
}

// Base implements the shared element behavior. Concrete widgets embed a
// *Base and optionally register themselves as its AttributeObserver.
type Base struct {
	tag     string
	deps    Deps
	channel *event.Channel
	scope   *css.Scope
	handle  *theme.Instance

	mu       sync.RWMutex
	raw      map[string]string
	parsed   map[string]any
	observed map[string]struct{}
	observer AttributeObserver
}

// New constructs an element base for the given tag. The element's default
// theme stylesheet (if cached in the registry) is injected immediately, the
// instance is registered for theme broadcast, and the active theme's
// override is applied through the late-mount path.
func New(tag string, deps Deps, events ...string) *Base {
	scope := css.NewIsolatedScope(!deps.NoAdoption)

	b := &Base{
		tag:     tag,
		deps:    deps,
		channel: event.New(append([]string{EventAttributeError}, events...)...),
		scope:   scope,
		raw:     make(map[string]string),
		parsed:  make(map[string]any),
	}

	if deps.Registry != nil {
		b.observed = make(map[string]struct{})
		for _, name := range deps.Registry.ObservedAttributes(tag) {
			b.observed[name] = struct{}{}
		}
		if sheet, ok := deps.Registry.ThemeCSS(tag); ok {
			scope.Inject(sheet)
		}
	}

	if deps.Engine != nil {
		b.handle = &theme.Instance{Tag: tag, Scope: scope}
		deps.Engine.RegisterInstance(b.handle)
		if err := deps.Engine.ApplyToInstance(context.Background(), b.handle); err != nil {
			deps.Log.WithComponent(tag).Error(err, "late theme apply failed")
		}
	}

	return b
}

// Tag returns the element's custom element tag.
func (b *Base) Tag() string { return b.tag }

// Channel returns the element's validated event channel.
func (b *Base) Channel() *event.Channel { return b.channel }

// Scope returns the element's isolated style scope.
func (b *Base) Scope() *css.Scope { return b.scope }

// SetObserver installs the widget's attribute change hook.
func (b *Base) SetObserver(obs AttributeObserver) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observer = obs
}

// SetAttribute stores a raw attribute value. The call order is fixed:
// descriptor-driven validation runs first (an invalid value fires
// EventAttributeError and logs, but never aborts), then the value is
// coerced into the typed cache, and only then is the observer hook invoked
// for observed attributes. Widgets cannot skip validation by forgetting a
// superclass call; the base owns the sequence.
func (b *Base) SetAttribute(name, raw string) {
	value := any(raw)
	if b.deps.Registry != nil {
		if err := b.deps.Registry.ValidateAttribute(b.tag, name, raw); err != nil {
			b.deps.Log.WithComponent(b.tag).Warn(err.Error())
			_, _ = b.channel.Fire(EventAttributeError, AttributeError{Name: name, Value: raw, Err: err})
		}
		value = b.deps.Registry.ParseValue(b.tag, name, raw)
	}

	b.mu.Lock()
	old := b.raw[name]
	b.raw[name] = raw
	b.parsed[name] = value
	_, isObserved := b.observed[name]
	observer := b.observer
	b.mu.Unlock()

	if isObserved && observer != nil {
		observer.AttributeChanged(name, old, raw, value)
	}
}

// Attribute returns the raw string value of an attribute.
func (b *Base) Attribute(name string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	raw, ok := b.raw[name]
	return raw, ok
}

// TypedAttribute returns the cached coerced value of an attribute, so reads
// never re-parse the raw string.
func (b *Base) TypedAttribute(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	value, ok := b.parsed[name]
	return value, ok
}

// RemoveAttribute deletes an attribute from both caches, notifying the
// observer for observed attributes.
func (b *Base) RemoveAttribute(name string) {
	b.mu.Lock()
	old, present := b.raw[name]
	delete(b.raw, name)
	delete(b.parsed, name)
	_, isObserved := b.observed[name]
	observer := b.observer
	b.mu.Unlock()

	if present && isObserved && observer != nil {
		observer.AttributeChanged(name, old, "", nil)
	}
}

// Template returns one of the component's markup fragments loaded at
// bootstrap.
func (b *Base) Template(id string) (string, bool) {
	if b.deps.Registry == nil {
		return "", false
	}
	return b.deps.Registry.Template(b.tag, id)
}

// Release tears the element down: it stops theme tracking immediately
// rather than waiting for the garbage collector to notice.
func (b *Base) Release() {
	if b.deps.Engine != nil && b.handle != nil {
		b.deps.Engine.ReleaseInstance(b.handle)
	}
}

// Container is an element that holds children.
type Container struct {
	*Base

	mu       sync.Mutex
	children []Element
}

// NewContainer constructs a container base for the given tag.
func NewContainer(tag string, deps Deps, events ...string) *Container {
	return &Container{Base: New(tag, deps, events...)}
}

// Add appends children.
func (c *Container) Add(children ...Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = append(c.children, children...)
}

// Remove detaches a child by identity, reporting whether it was present.
func (c *Container) Remove(child Element) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.children {
		if existing == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children returns a copy of the child list.
func (c *Container) Children() []Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Element(nil), c.children...)
}

// Release releases the container and every child.
func (c *Container) Release() {
	c.mu.Lock()
	children := append([]Element(nil), c.children...)
	c.mu.Unlock()

	for _, child := range children {
		child.Release()
	}
	c.Base.Release()
}
