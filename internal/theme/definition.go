// Package theme implements the runtime theme engine: a registry of theme
// definitions with inheritance, the single active theme, and the machinery
// that applies and removes stylesheet sets across the document scope and
// every live element instance.
package theme

import (
	"github.com/gooey-ui/gooey/internal/css"
)

// Base is the reserved theme name meaning "no overrides".
const Base = "base"

// Definition describes one registered theme: an optional theme-level
// stylesheet of custom-property overrides, per-component override sheets
// keyed by tag, and an optional parent theme.
type Definition struct {
	// Sheet is the compiled theme-level stylesheet, if already compiled.
	Sheet *css.Stylesheet
	// CSSText is raw stylesheet text compiled on demand during staging and
	// cached on first use. Ignored when Sheet is set.
	CSSText string
	// Overrides maps component tags to the override sheet substituted into
	// that component's isolated scope while this theme is active.
	Overrides map[string]*css.Stylesheet
	// Extends names the parent theme, if any.
	Extends string
}

// merge folds an incremental declaration into an existing partial
// definition. Non-zero fields of next win; override maps are merged.
func (d *Definition) merge(next Definition) {
	if next.Sheet != nil {
		d.Sheet = next.Sheet
	}
	if next.CSSText != "" {
		d.CSSText = next.CSSText
		if next.Sheet == nil {
			// fresh text invalidates a previously compiled sheet
			d.Sheet = nil
		}
	}
	if next.Extends != "" {
		d.Extends = next.Extends
	}
	if len(next.Overrides) > 0 {
		if d.Overrides == nil {
			d.Overrides = make(map[string]*css.Stylesheet, len(next.Overrides))
		}
		for tag, sheet := range next.Overrides {
			d.Overrides[tag] = sheet
		}
	}
}
