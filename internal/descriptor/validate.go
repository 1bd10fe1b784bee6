package descriptor

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Custom element tag names are lowercase and must contain a hyphen.
	elementTagPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("element_tag", func(fl validator.FieldLevel) bool {
			return elementTagPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a raw descriptor document against the schema contract.
// Every violation is collected before failing; a malformed descriptor
// reports everything wrong with it in a single ValidationError rather than
// one problem per round-trip.
func Validate(doc *Document, path string) error {
	if doc == nil {
		return gooeyerrors.NewValidationError(path, []gooeyerrors.Violation{{Message: "descriptor document is nil"}})
	}

	var violations []gooeyerrors.Violation

	if err := validatorInstance().Struct(doc); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				violations = append(violations, fieldViolation(fe))
			}
		} else {
			violations = append(violations, gooeyerrors.Violation{Message: err.Error()})
		}
	}

	if doc.Attributes == nil {
		violations = append(violations, gooeyerrors.Violation{Field: "attributes", Message: "is required"})
	}

	for name, attr := range doc.Attributes {
		violations = append(violations, attributeViolations(name, attr)...)
	}

	for i, tpl := range doc.Templates {
		if tpl.ID == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("templates[%d].id", i),
				Message: "is required",
			})
		}
		if tpl.File == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("templates[%d].file", i),
				Message: "is required",
			})
		}
	}

	if doc.Themes != nil {
		if doc.Themes.Default == "" {
			violations = append(violations, gooeyerrors.Violation{Field: "themes.default", Message: "is required when themes is present"})
		}
		for i, name := range doc.Themes.Available {
			if name == "" {
				violations = append(violations, gooeyerrors.Violation{
					Field:   fmt.Sprintf("themes.available[%d]", i),
					Message: "must not be empty",
				})
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return gooeyerrors.NewValidationError(path, violations)
}

func attributeViolations(name string, attr AttributeDoc) []gooeyerrors.Violation {
	field := func(suffix string) string {
		return "attributes." + name + suffix
	}

	kind, known := ParseKind(attr.Type)
	if !known {
		v := gooeyerrors.Violation{
			Field:   field(".type"),
			Message: fmt.Sprintf("unknown type %q (expected STRING, NUMBER, or BOOLEAN)", attr.Type),
		}
		// Constraint compatibility is unknowable without a type; report the
		// type violation alone rather than guessing.
		return []gooeyerrors.Violation{v}
	}

	var violations []gooeyerrors.Violation

	if len(attr.Enum) > 0 && kind != KindString {
		violations = append(violations, gooeyerrors.Violation{
			Field:   field(".enum"),
			Message: "only valid for STRING attributes",
		})
	}
	if attr.Pattern != "" {
		if kind != KindString {
			violations = append(violations, gooeyerrors.Violation{
				Field:   field(".pattern"),
				Message: "only valid for STRING attributes",
			})
		} else if _, err := regexp.Compile(attr.Pattern); err != nil {
			violations = append(violations, gooeyerrors.Violation{
				Field:   field(".pattern"),
				Message: fmt.Sprintf("does not compile: %v", err),
			})
		}
	}
	if (attr.Min != nil || attr.Max != nil) && kind != KindNumber {
		violations = append(violations, gooeyerrors.Violation{
			Field:   field(".min"),
			Message: "min/max only valid for NUMBER attributes",
		})
	}
	if attr.Min != nil && attr.Max != nil && *attr.Min > *attr.Max {
		violations = append(violations, gooeyerrors.Violation{
			Field:   field(".min"),
			Message: fmt.Sprintf("min %v exceeds max %v", *attr.Min, *attr.Max),
		})
	}

	return violations
}

func fieldViolation(fe validator.FieldError) gooeyerrors.Violation {
	field := strings.TrimPrefix(fe.Namespace(), "Document.")
	field = strings.ToLower(field[:1]) + field[1:]

	switch fe.Tag() {
	case "required":
		return gooeyerrors.Violation{Field: field, Message: "is required"}
	case "element_tag":
		return gooeyerrors.Violation{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid custom element tag (lowercase, must contain a hyphen)", fe.Value()),
		}
	default:
		return gooeyerrors.Violation{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}
