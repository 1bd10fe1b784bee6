package css

import "sync"

// Scope is a style scope: either the document-level scope or an isolated
// scope owned by one element instance. Isolated scopes keep their styles
// from leaking into the surrounding document except via explicit adoption.
//
// A scope either supports shared-stylesheet adoption or falls back to
// literal injection of the sheet's text. Both paths preserve application
// order and sheet identity, so cascade results and removal semantics are
// identical regardless of which path a scope uses.
type Scope struct {
	mu       sync.Mutex
	isolated bool
	adoption bool
	sheets   []*Stylesheet
	inline   map[*Stylesheet]string
}

// NewDocumentScope returns the document-level scope. Document scopes always
// support adoption.
func NewDocumentScope() *Scope {
	return &Scope{adoption: true}
}

// NewIsolatedScope returns an isolated per-instance scope. adoption controls
// whether the scope accepts shared compiled sheets directly or requires the
// literal-injection fallback.
func NewIsolatedScope(adoption bool) *Scope {
	s := &Scope{isolated: true, adoption: adoption}
	if !adoption {
		s.inline = make(map[*Stylesheet]string)
	}
	return s
}

// Isolated reports whether the scope is an isolated (per-instance) scope.
func (s *Scope) Isolated() bool {
	return s.isolated
}

// SupportsAdoption reports whether the scope accepts shared compiled sheets.
func (s *Scope) SupportsAdoption() bool {
	return s.adoption
}

// Inject applies a compiled sheet to the scope, using adoption when
// supported and literal injection otherwise. Injecting the same sheet twice
// is a no-op; the sheet stays at its original cascade position.
func (s *Scope) Inject(sheet *Stylesheet) {
	if sheet == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sheets {
		if existing == sheet {
			return
		}
	}
	s.sheets = append(s.sheets, sheet)
	if !s.adoption {
		s.inline[sheet] = sheet.Source
	}
}

// Remove detaches a sheet by identity, reporting whether it was present.
// Sheets not owned by the caller are untouched.
func (s *Scope) Remove(sheet *Stylesheet) bool {
	if sheet == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.sheets {
		if existing == sheet {
			s.sheets = append(s.sheets[:i], s.sheets[i+1:]...)
			if !s.adoption {
				delete(s.inline, sheet)
			}
			return true
		}
	}
	return false
}

// Contains reports whether the sheet is currently applied to the scope.
func (s *Scope) Contains(sheet *Stylesheet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.sheets {
		if existing == sheet {
			return true
		}
	}
	return false
}

// Sheets returns the applied sheets in cascade order.
func (s *Scope) Sheets() []*Stylesheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Stylesheet(nil), s.sheets...)
}

// InlineText returns the literal payload injected for a sheet on the
// fallback path, if any.
func (s *Scope) InlineText(sheet *Stylesheet) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.inline[sheet]
	return text, ok
}

// EffectiveProps resolves the cascade of custom properties across all
// applied sheets. Later-applied sheets win.
func (s *Scope) EffectiveProps() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string)
	for _, sheet := range s.sheets {
		for name, value := range sheet.props {
			out[name] = value
		}
	}
	return out
}
