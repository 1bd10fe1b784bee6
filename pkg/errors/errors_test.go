package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("status 404")
	err := NewNotFoundError("components/button", cause)

	var nf *NotFoundError
	require.True(t, stderrors.As(err, &nf))
	assert.Equal(t, "components/button", nf.Path)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "components/button")
}

func TestValidationErrorListsEveryViolation(t *testing.T) {
	err := NewValidationError("components/button", []Violation{
		{Field: "tagName", Message: "is required"},
		{Field: "attributes.size.min", Message: "only valid for NUMBER attributes"},
		{Message: "templates[0] missing id"},
	})

	var ve *ValidationError
	require.True(t, stderrors.As(err, &ve))
	assert.Len(t, ve.Violations, 3)

	msg := err.Error()
	assert.Contains(t, msg, "3 violations")
	assert.Contains(t, msg, "tagName: is required")
	assert.Contains(t, msg, "attributes.size.min: only valid for NUMBER attributes")
	assert.Contains(t, msg, "templates[0] missing id")
}

func TestBootstrapErrorReportsEachFailure(t *testing.T) {
	err := NewBootstrapError([]BootstrapFailure{
		{Component: "gooey.button", Phase: "descriptor", Err: fmt.Errorf("fetch failed")},
		{Component: "gooey.menu", Phase: "template", Err: fmt.Errorf("template load failed")},
	})

	var be *BootstrapError
	require.True(t, stderrors.As(err, &be))
	require.Len(t, be.Failures, 2)
	assert.Equal(t, "template", be.Failures[1].Phase)
	assert.Contains(t, err.Error(), "gooey.button [descriptor]")
	assert.Contains(t, err.Error(), "2 failed component(s)")
}

func TestInvalidEventErrorNamesDeclaredSet(t *testing.T) {
	err := NewInvalidEventError("resize", []string{"click", "mousedown"})
	assert.Contains(t, err.Error(), `"resize"`)
	assert.Contains(t, err.Error(), "click, mousedown")
}

func TestUnknownThemeError(t *testing.T) {
	err := NewUnknownThemeError("midnight")
	assert.Contains(t, err.Error(), `unknown theme "midnight"`)
}

func TestEmptyAndMalformedDocumentErrors(t *testing.T) {
	empty := NewEmptyDocumentError("components/tab")
	assert.Contains(t, empty.Error(), "empty")

	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	malformed := NewMalformedDocumentError("components/tab", cause)
	assert.ErrorIs(t, malformed, cause)
	assert.Contains(t, malformed.Error(), "malformed")
}
