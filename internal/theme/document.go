package theme

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gooey-ui/gooey/internal/css"
	"github.com/gooey-ui/gooey/internal/descriptor"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// Document is the declarative form of a theme registration, mirroring the
// programmatic RegisterThemeConfig API: a name, optional parent, a
// theme-level stylesheet (inline text or fetched by href), per-component
// overrides, and an active flag that activates the theme on registration.
type Document struct {
	Name      string        `yaml:"name"`
	Extends   string        `yaml:"extends"`
	CSS       string        `yaml:"css"`
	Href      string        `yaml:"href"`
	Active    bool          `yaml:"active"`
	Overrides []OverrideRef `yaml:"overrides"`
}

// OverrideRef points one component tag at its override stylesheet.
type OverrideRef struct {
	Tag  string `yaml:"tag"`
	Href string `yaml:"href"`
}

// ParseDocument unmarshals and checks a theme document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse theme document: %w", err)
	}

	var violations []gooeyerrors.Violation
	if doc.Name == "" {
		violations = append(violations, gooeyerrors.Violation{Field: "name", Message: "is required"})
	}
	if doc.CSS != "" && doc.Href != "" {
		violations = append(violations, gooeyerrors.Violation{Field: "css", Message: "css and href are mutually exclusive"})
	}
	for i, ref := range doc.Overrides {
		if ref.Tag == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("overrides[%d].tag", i),
				Message: "is required",
			})
		}
		if ref.Href == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("overrides[%d].href", i),
				Message: "is required",
			})
		}
	}
	if len(violations) > 0 {
		return nil, gooeyerrors.NewValidationError("theme document", violations)
	}

	return &doc, nil
}

// RegisterDocument fetches a theme document's assets and registers the
// resulting definition, activating the theme if the document asks for it.
func (e *Engine) RegisterDocument(ctx context.Context, fetcher descriptor.Fetcher, doc *Document) error {
	def := Definition{Extends: doc.Extends, CSSText: doc.CSS}

	if doc.Href != "" {
		data, err := fetcher.Fetch(ctx, doc.Href)
		if err != nil {
			return fmt.Errorf("theme %s: fetch %s: %w", doc.Name, doc.Href, err)
		}
		def.CSSText = string(data)
	}

	if len(doc.Overrides) > 0 {
		def.Overrides = make(map[string]*css.Stylesheet, len(doc.Overrides))
		for _, ref := range doc.Overrides {
			data, err := fetcher.Fetch(ctx, ref.Href)
			if err != nil {
				return fmt.Errorf("theme %s: override for %s: %w", doc.Name, ref.Tag, err)
			}
			sheet, err := css.Compile(string(data))
			if err != nil {
				return fmt.Errorf("theme %s: override for %s: %w", doc.Name, ref.Tag, err)
			}
			def.Overrides[ref.Tag] = sheet
		}
	}

	e.RegisterThemeConfig(doc.Name, def)

	if doc.Active {
		return e.SetTheme(ctx, doc.Name)
	}
	return nil
}
