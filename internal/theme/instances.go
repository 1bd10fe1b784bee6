package theme

import (
	"weak"

	"github.com/gooey-ui/gooey/internal/css"
)

// Instance is the engine's handle to one live element. The element owns the
// handle for its lifetime; the engine keeps only a weak reference, so theme
// broadcast never prevents a removed element from being collected.
type Instance struct {
	Tag   string
	Scope *css.Scope
}

const (
	// pruneThreshold is the tracked-set size below which dead references
	// are left in place.
	pruneThreshold = 32
	// pruneCadence spaces out full scans: only every Nth registration past
	// the threshold triggers one.
	pruneCadence = 8
)

// RegisterInstance starts tracking a live element for theme broadcast.
// Dead-reference cleanup is amortized rather than performed on every
// registration.
func (e *Engine) RegisterInstance(inst *Instance) {
	if inst == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.instances = append(e.instances, weak.Make(inst))
	e.registrations++
	if len(e.instances) > pruneThreshold && e.registrations%pruneCadence == 0 {
		e.pruneLocked()
	}
}

// ReleaseInstance stops tracking a handle explicitly, for elements with a
// deterministic teardown path. Elements that skip this are still dropped
// once the garbage collector reclaims them.
func (e *Engine) ReleaseInstance(inst *Instance) {
	if inst == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, ref := range e.instances {
		if ref.Value() == inst {
			e.instances = append(e.instances[:i], e.instances[i+1:]...)
			return
		}
	}
}

// LiveInstances returns every tracked element still reachable, pruning dead
// entries as a side effect.
func (e *Engine) LiveInstances() []*Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.liveLocked()
}

func (e *Engine) liveLocked() []*Instance {
	live := make([]*Instance, 0, len(e.instances))
	kept := e.instances[:0]
	for _, ref := range e.instances {
		if inst := ref.Value(); inst != nil {
			live = append(live, inst)
			kept = append(kept, ref)
		}
	}
	e.instances = kept
	return live
}

func (e *Engine) pruneLocked() {
	kept := e.instances[:0]
	for _, ref := range e.instances {
		if ref.Value() != nil {
			kept = append(kept, ref)
		}
	}
	e.instances = kept
}
