// Package registry holds the process-wide component table: one descriptor,
// theme stylesheet, template set, and asset path per registered tag. A
// single Registry instance is constructed at startup and passed by
// reference to the bootstrap loader and to element bases; tests construct
// their own.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/descriptor"
)

// Registry maps custom element tags to their registered metadata. Populated
// during bootstrap, read-mostly for the remainder of the process. Safe for
// concurrent use.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*descriptor.Descriptor
	themeCSS    map[string]*css.Stylesheet
	paths       map[string]string
	templates   map[string]map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		descriptors: make(map[string]*descriptor.Descriptor),
		themeCSS:    make(map[string]*css.Stylesheet),
		paths:       make(map[string]string),
		templates:   make(map[string]map[string]string),
	}
}

// Register inserts or replaces the descriptor for a tag. Registering the
// same descriptor twice leaves the registry in the same observable state as
// registering it once.
func (r *Registry) Register(tag string, d *descriptor.Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors[tag] = d
}

// Descriptor returns the registered descriptor for a tag.
func (r *Registry) Descriptor(tag string) (*descriptor.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[tag]
	return d, ok
}

// SetThemeCSS caches the component's default theme stylesheet.
func (r *Registry) SetThemeCSS(tag string, sheet *css.Stylesheet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themeCSS[tag] = sheet
}

// ThemeCSS returns the cached default theme stylesheet for a tag.
func (r *Registry) ThemeCSS(tag string) (*css.Stylesheet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sheet, ok := r.themeCSS[tag]
	return sheet, ok
}

// SetPath records the component's asset path, needed later for on-demand
// theme discovery.
func (r *Registry) SetPath(tag, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[tag] = path
}

// Path returns the component's asset path.
func (r *Registry) Path(tag string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.paths[tag]
	return path, ok
}

// SetTemplates stores the component's loaded markup fragments keyed by
// template id.
func (r *Registry) SetTemplates(tag string, templates map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tag] = templates
}

// Template returns one of a component's loaded markup fragments.
func (r *Registry) Template(tag, id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	markup, ok := r.templates[tag][id]
	return markup, ok
}

// AttributeDefinition returns the declared schema for one attribute.
func (r *Registry) AttributeDefinition(tag, name string) (descriptor.AttributeSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[tag]
	if !ok {
		return descriptor.AttributeSchema{}, false
	}
	schema, ok := d.Attributes[name]
	return schema, ok
}

// ValidateAttribute checks a raw value against the declared constraints for
// the attribute. A nil return means valid. Undeclared attributes always
// pass: the registry validates declared attributes only, so host
// applications can add arbitrary custom data attributes.
func (r *Registry) ValidateAttribute(tag, name, raw string) error {
	schema, ok := r.AttributeDefinition(tag, name)
	if !ok {
		return nil
	}

	switch schema.Kind {
	case descriptor.KindString:
		if len(schema.Enum) > 0 && !lo.Contains(schema.Enum, raw) {
			return fmt.Errorf("attribute %s=%q: not one of [%s]", name, raw, strings.Join(schema.Enum, ", "))
		}
		if schema.Pattern != nil && !schema.Pattern.MatchString(raw) {
			return fmt.Errorf("attribute %s=%q: does not match %s", name, raw, schema.Pattern)
		}
	case descriptor.KindNumber:
		if schema.Min == nil && schema.Max == nil {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("attribute %s=%q: not numeric", name, raw)
		}
		if schema.Min != nil && f < *schema.Min {
			return fmt.Errorf("attribute %s=%v: below minimum %v", name, f, *schema.Min)
		}
		if schema.Max != nil && f > *schema.Max {
			return fmt.Errorf("attribute %s=%v: above maximum %v", name, f, *schema.Max)
		}
	case descriptor.KindBoolean:
		// booleans carry no constraints
	}

	return nil
}

// ParseValue coerces a raw attribute string to its declared type. Coercion
// is total: it never fails, even for values that did not validate, because
// the UI must render something rather than throw. Unparsable numbers
// uniformly coerce to 0; booleans treat the empty string and
// case-insensitive "false" as false and everything else as true.
func (r *Registry) ParseValue(tag, name, raw string) any {
	schema, ok := r.AttributeDefinition(tag, name)
	if !ok {
		return raw
	}

	switch schema.Kind {
	case descriptor.KindNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return float64(0)
		}
		return f
	case descriptor.KindBoolean:
		return raw != "" && !strings.EqualFold(raw, "false")
	default:
		return raw
	}
}

// ObservedAttributes returns the declared attribute names for a tag in
// sorted order. This list is what drives which attribute mutations trigger
// change callbacks on element bases.
func (r *Registry) ObservedAttributes(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[tag]
	if !ok {
		return nil
	}
	names := lo.Keys(d.Attributes)
	sort.Strings(names)
	return names
}

// Tags returns every registered tag in sorted order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := lo.Keys(r.descriptors)
	sort.Strings(tags)
	return tags
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}
