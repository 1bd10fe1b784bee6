package errors

import (
	"fmt"
	"strings"
)

// NotFoundError reports a descriptor document that could not be fetched.
type NotFoundError struct {
	Path string
	Err  error
}

// NewNotFoundError constructs a NotFoundError for the given asset path.
func NewNotFoundError(path string, err error) error {
	return &NotFoundError{Path: path, Err: err}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("descriptor not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("descriptor not found: %s", e.Path)
}

// Unwrap exposes the underlying transport error.
func (e *NotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EmptyDocumentError reports a descriptor document with a blank body.
type EmptyDocumentError struct {
	Path string
}

// NewEmptyDocumentError constructs an EmptyDocumentError.
func NewEmptyDocumentError(path string) error {
	return &EmptyDocumentError{Path: path}
}

func (e *EmptyDocumentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("descriptor is empty: %s", e.Path)
}

// MalformedDocumentError reports a descriptor document that failed structured parsing.
type MalformedDocumentError struct {
	Path string
	Err  error
}

// NewMalformedDocumentError constructs a MalformedDocumentError.
func NewMalformedDocumentError(path string, err error) error {
	return &MalformedDocumentError{Path: path, Err: err}
}

func (e *MalformedDocumentError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("malformed descriptor: %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying parse error.
func (e *MalformedDocumentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Violation describes a single descriptor schema violation.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}
	return v.Field + ": " + v.Message
}

// ValidationError aggregates every schema violation found in one descriptor.
// Validation never stops at the first problem; callers receive the full list.
type ValidationError struct {
	Path       string
	Violations []Violation
}

// NewValidationError constructs a ValidationError from collected violations.
func NewValidationError(path string, violations []Violation) error {
	return &ValidationError{Path: path, Violations: violations}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, "  - "+v.String())
	}
	subject := e.Path
	if subject == "" {
		subject = "descriptor"
	}
	return fmt.Sprintf("invalid descriptor %s (%d violations):\n%s", subject, len(e.Violations), strings.Join(lines, "\n"))
}

// ThemeCSSNotFoundError reports a theme stylesheet that could not be fetched.
type ThemeCSSNotFoundError struct {
	Path  string
	Theme string
	Err   error
}

// NewThemeCSSNotFoundError constructs a ThemeCSSNotFoundError.
func NewThemeCSSNotFoundError(path, theme string, err error) error {
	return &ThemeCSSNotFoundError{Path: path, Theme: theme, Err: err}
}

func (e *ThemeCSSNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("theme css not found: %s/themes/%s.css: %v", e.Path, e.Theme, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *ThemeCSSNotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnknownThemeError reports an activation request for a theme that was never registered.
type UnknownThemeError struct {
	Name string
}

// NewUnknownThemeError constructs an UnknownThemeError.
func NewUnknownThemeError(name string) error {
	return &UnknownThemeError{Name: name}
}

func (e *UnknownThemeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown theme %q\nHint: register the theme before activating it", e.Name)
}

// InvalidEventError reports use of an event name outside a channel's declared vocabulary.
type InvalidEventError struct {
	Event    string
	Declared []string
}

// NewInvalidEventError constructs an InvalidEventError.
func NewInvalidEventError(event string, declared []string) error {
	return &InvalidEventError{Event: event, Declared: declared}
}

func (e *InvalidEventError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf(
		"event %q is not declared on this channel (declared: %s)\nHint: declare the event at channel construction",
		e.Event,
		strings.Join(e.Declared, ", "),
	)
}

// BootstrapFailure records one component's failure during bootstrap, tagged
// with the pipeline phase that failed.
type BootstrapFailure struct {
	Component string
	Phase     string
	Err       error
}

func (f BootstrapFailure) String() string {
	return fmt.Sprintf("%s [%s]: %v", f.Component, f.Phase, f.Err)
}

// BootstrapError aggregates per-component failures across a full bootstrap
// pass. One broken component never aborts the others; the loader attempts
// every manifest entry and reports everything that failed in one error.
type BootstrapError struct {
	Failures []BootstrapFailure
}

// NewBootstrapError constructs a BootstrapError from collected failures.
func NewBootstrapError(failures []BootstrapFailure) error {
	return &BootstrapError{Failures: failures}
}

func (e *BootstrapError) Error() string {
	if e == nil {
		return ""
	}
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, "  - "+f.String())
	}
	return fmt.Sprintf("bootstrap completed with %d failed component(s):\n%s", len(e.Failures), strings.Join(lines, "\n"))
}
