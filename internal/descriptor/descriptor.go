// Package descriptor defines component descriptor documents and the loader
// that fetches, validates, and resolves them. A descriptor declares a
// component's tag name, attribute schema, required templates, and theme
// metadata; it is immutable after validation and lives for the process
// lifetime inside the component registry.
package descriptor

import (
	"regexp"
)

// DescriptorFile is the conventional file name of a component descriptor
// inside its component directory.
const DescriptorFile = "component.yaml"

// AttrKind is the resolved attribute type. The stringly-typed document tag
// is resolved into this variant once at load time.
type AttrKind int

const (
	KindString AttrKind = iota
	KindNumber
	KindBoolean
)

// String returns the document-level name of the kind.
func (k AttrKind) String() string {
	switch k {
	case KindNumber:
		return "NUMBER"
	case KindBoolean:
		return "BOOLEAN"
	default:
		return "STRING"
	}
}

// ParseKind maps a document type tag to an AttrKind.
func ParseKind(tag string) (AttrKind, bool) {
	switch tag {
	case "STRING":
		return KindString, true
	case "NUMBER":
		return KindNumber, true
	case "BOOLEAN":
		return KindBoolean, true
	default:
		return KindString, false
	}
}

// AttributeSchema is the resolved, typed schema for one declared attribute.
// Constraint fields are only populated for the kind they are compatible
// with: Enum and Pattern for strings, Min/Max for numbers.
type AttributeSchema struct {
	Kind    AttrKind
	Enum    []string
	Min     *float64
	Max     *float64
	Pattern *regexp.Regexp
}

// TemplateRef names one markup fragment the component requires before it
// can construct correctly.
type TemplateRef struct {
	ID   string
	File string
}

// ThemeInfo carries a component's default theme and the themes it declares
// override stylesheets for.
type ThemeInfo struct {
	Default   string
	Available []string
}

// Descriptor is the validated, resolved form of a component descriptor.
type Descriptor struct {
	Name       string
	TagName    string
	Script     string
	Attributes map[string]AttributeSchema
	Templates  []TemplateRef
	Themes     ThemeInfo
	Tokens     map[string]string
}

// SupportsTheme reports whether the component declares an override for the
// named theme.
func (d *Descriptor) SupportsTheme(theme string) bool {
	for _, name := range d.Themes.Available {
		if name == theme {
			return true
		}
	}
	return false
}

// Document is the raw descriptor document as parsed from YAML, before
// validation and schema resolution.
type Document struct {
	Name       string                  `yaml:"name" validate:"required"`
	TagName    string                  `yaml:"tagName" validate:"required,element_tag"`
	Script     string                  `yaml:"script" validate:"required"`
	Attributes map[string]AttributeDoc `yaml:"attributes"`
	Templates  []TemplateDoc           `yaml:"templates"`
	Themes     *ThemesDoc              `yaml:"themes"`
	Tokens     map[string]string       `yaml:"tokens"`
}

// AttributeDoc is one raw attribute declaration.
type AttributeDoc struct {
	Type    string   `yaml:"type"`
	Enum    []string `yaml:"enum"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Pattern string   `yaml:"pattern"`
}

// TemplateDoc is one raw template requirement.
type TemplateDoc struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// ThemesDoc is the raw theme metadata block.
type ThemesDoc struct {
	Default   string   `yaml:"default"`
	Available []string `yaml:"available"`
}

// Resolve converts a validated document into its immutable typed form.
// Callers must validate first; Resolve trusts the document's shape apart
// from pattern compilation.
func Resolve(doc *Document) (*Descriptor, error) {
	d := &Descriptor{
		Name:       doc.Name,
		TagName:    doc.TagName,
		Script:     doc.Script,
		Attributes: make(map[string]AttributeSchema, len(doc.Attributes)),
		Tokens:     doc.Tokens,
	}

	for name, attr := range doc.Attributes {
		kind, _ := ParseKind(attr.Type)
		schema := AttributeSchema{
			Kind: kind,
			Enum: attr.Enum,
			Min:  attr.Min,
			Max:  attr.Max,
		}
		if attr.Pattern != "" {
			pattern, err := regexp.Compile(attr.Pattern)
			if err != nil {
				return nil, err
			}
			schema.Pattern = pattern
		}
		d.Attributes[name] = schema
	}

	for _, tpl := range doc.Templates {
		d.Templates = append(d.Templates, TemplateRef{ID: tpl.ID, File: tpl.File})
	}

	if doc.Themes != nil {
		d.Themes = ThemeInfo{
			Default:   doc.Themes.Default,
			Available: append([]string(nil), doc.Themes.Available...),
		}
	}

	return d, nil
}
