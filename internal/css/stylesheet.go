// Package css models compiled stylesheets and the style scopes they are
// applied to. Compiled sheets are shared by pointer across every scope that
// adopts them; identity is what the theme engine uses to install and remove
// whole stylesheet sets atomically.
package css

import (
	"fmt"
	"strings"
)

// Stylesheet is a compiled stylesheet. One compiled object is shared across
// all scopes that adopt it; never mutate Source after compilation.
type Stylesheet struct {
	Source string

	props map[string]string
	order []string
}

// Compile parses stylesheet text into a shareable compiled object. Custom
// property declarations (`--name: value`) are indexed for cascade queries.
// Unbalanced braces fail compilation.
func Compile(source string) (*Stylesheet, error) {
	text := stripComments(source)

	depth := 0
	for _, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("compile stylesheet: unbalanced closing brace")
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("compile stylesheet: %d unclosed block(s)", depth)
	}

	sheet := &Stylesheet{
		Source: source,
		props:  make(map[string]string),
	}
	sheet.indexCustomProperties(text)
	return sheet, nil
}

// MustCompile compiles source and panics on failure. For fixed sheets in
// tests and declarative theme tables.
func MustCompile(source string) *Stylesheet {
	sheet, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return sheet
}

// Prop returns the value of a custom property declared anywhere in the sheet.
func (s *Stylesheet) Prop(name string) (string, bool) {
	v, ok := s.props[name]
	return v, ok
}

// Props returns a copy of the sheet's custom property declarations.
func (s *Stylesheet) Props() map[string]string {
	out := make(map[string]string, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

// PropNames returns custom property names in declaration order.
func (s *Stylesheet) PropNames() []string {
	return append([]string(nil), s.order...)
}

func (s *Stylesheet) indexCustomProperties(text string) {
	depth := 0
	var decl strings.Builder
	flush := func() {
		raw := strings.TrimSpace(decl.String())
		decl.Reset()
		if !strings.HasPrefix(raw, "--") {
			return
		}
		name, value, ok := strings.Cut(raw, ":")
		if !ok {
			return
		}
		name = strings.TrimSpace(name)
		if _, seen := s.props[name]; !seen {
			s.order = append(s.order, name)
		}
		s.props[name] = strings.TrimSpace(value)
	}

	for _, r := range text {
		switch r {
		case '{':
			depth++
			decl.Reset()
		case '}':
			flush()
			depth--
		case ';':
			flush()
		default:
			if depth > 0 {
				decl.WriteRune(r)
			}
		}
	}
}

func stripComments(text string) string {
	var out strings.Builder
	for {
		start := strings.Index(text, "/*")
		if start < 0 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		end := strings.Index(text[start+2:], "*/")
		if end < 0 {
			return out.String()
		}
		text = text[start+2+end+2:]
	}
}
