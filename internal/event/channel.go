// Package event implements the validated pub-sub channel every element
// rides on. A channel declares a closed set of legal event names up front;
// attaching or firing an undeclared name is a hard failure rather than a
// silent no-op, so typos in event wiring surface immediately.
package event

import (
	"sort"
	"sync"

	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// NativeEvents are the native pointer event names every channel understands.
// They are declared automatically at construction so native and synthetic
// events share one dispatch path.
var NativeEvents = []string{"click", "mousedown", "mouseup", "mouseover", "mouseout"}

// Listener receives synchronous notifications for one event name.
type Listener func(name string, payload any)

// Subscription identifies a registered listener so it can be removed later.
// Removal matches by subscription identity, never by function value.
type Subscription struct {
	id   int
	name string
}

// Name returns the event name the subscription is attached to.
func (s *Subscription) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

type entry struct {
	id       int
	listener Listener
}

// Channel is a per-instance validated event bus. It is safe for concurrent
// use, though in practice the toolkit drives it from a single goroutine.
type Channel struct {
	mu        sync.RWMutex
	declared  map[string]struct{}
	listeners map[string][]entry
	nextID    int
	suspended bool
}

// New constructs a channel whose legal vocabulary is the given names plus
// the native pointer events.
func New(names ...string) *Channel {
	c := &Channel{
		declared:  make(map[string]struct{}, len(names)+len(NativeEvents)),
		listeners: make(map[string][]entry),
	}
	for _, name := range NativeEvents {
		c.declared[name] = struct{}{}
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		c.declared[name] = struct{}{}
	}
	return c
}

// Declared reports whether name is part of the channel's vocabulary.
func (c *Channel) Declared(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.declared[name]
	return ok
}

// Events returns the declared event names in sorted order.
func (c *Channel) Events() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.declared))
	for name := range c.declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// On registers a listener for a declared event name. Listeners fire in
// registration order.
func (c *Channel) On(name string, listener Listener) (*Subscription, error) {
	if listener == nil {
		return nil, gooeyerrors.NewInvalidEventError(name, c.Events())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.declared[name]; !ok {
		return nil, gooeyerrors.NewInvalidEventError(name, c.eventsLocked())
	}

	c.nextID++
	sub := &Subscription{id: c.nextID, name: name}
	c.listeners[name] = append(c.listeners[name], entry{id: sub.id, listener: listener})
	return sub, nil
}

// Off removes the first-found listener matching the subscription. Removing
// an already-removed subscription is a no-op.
func (c *Channel) Off(sub *Subscription) {
	if sub == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.listeners[sub.name]
	for i, e := range entries {
		if e.id == sub.id {
			c.listeners[sub.name] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// OffAll removes every listener registered for the given event name.
func (c *Channel) OffAll(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, name)
}

// Fire delivers payload to every listener for name, synchronously and in
// registration order. It returns false without notifying anyone while the
// channel is suspended, and an error if name was never declared.
func (c *Channel) Fire(name string, payload any) (bool, error) {
	c.mu.RLock()
	if _, ok := c.declared[name]; !ok {
		declared := c.eventsLocked()
		c.mu.RUnlock()
		return false, gooeyerrors.NewInvalidEventError(name, declared)
	}
	if c.suspended {
		c.mu.RUnlock()
		return false, nil
	}
	entries := append([]entry(nil), c.listeners[name]...)
	c.mu.RUnlock()

	for _, e := range entries {
		e.listener(name, payload)
	}
	return true, nil
}

// DispatchNative translates a native pointer event into the channel's own
// dispatch path. Unknown native names report an error like any other
// undeclared event.
func (c *Channel) DispatchNative(name string, payload any) (bool, error) {
	return c.Fire(name, payload)
}

// Suspend pauses delivery without losing registrations.
func (c *Channel) Suspend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suspended = true
}

// Resume re-enables delivery.
func (c *Channel) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suspended = false
}

// Suspended reports whether delivery is currently paused.
func (c *Channel) Suspended() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.suspended
}

func (c *Channel) eventsLocked() []string {
	names := make([]string, 0, len(c.declared))
	for name := range c.declared {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
