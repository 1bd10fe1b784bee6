// Package manifest defines the static bootstrap manifest: the list of
// component packages and elements the loader registers at startup.
package manifest

import (
	"context"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/gooey-ui/gooey/internal/descriptor"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

// File is the conventional manifest file name.
const File = "gooey.yaml"

// Manifest lists every component to auto-load at startup. Additional
// components may still be loaded on demand later through the same
// descriptor contract.
type Manifest struct {
	Packages []Package `yaml:"packages"`

	// Themes lists paths to declarative theme documents registered after
	// the component pass.
	Themes []string `yaml:"themes"`
}

// Package groups elements under a shared directory prefix.
type Package struct {
	Name     string       `yaml:"name"`
	Elements []ElementRef `yaml:"elements"`
}

// ElementRef names one component directory inside its package.
type ElementRef struct {
	Name string `yaml:"name"`
}

// Qualified returns the package-qualified component name used in failure
// reports.
func (p Package) Qualified(el ElementRef) string {
	return p.Name + "." + el.Name
}

// Path resolves the component's asset directory.
func (p Package) Path(el ElementRef) string {
	return path.Join(p.Name, el.Name)
}

// Parse unmarshals and validates manifest text.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load fetches and parses a manifest through the same fetcher the
// descriptor loader uses.
func Load(ctx context.Context, fetcher descriptor.Fetcher, manifestPath string) (*Manifest, error) {
	data, err := fetcher.Fetch(ctx, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", manifestPath, err)
	}
	return Parse(data)
}

func (m *Manifest) validate() error {
	var violations []gooeyerrors.Violation

	if len(m.Packages) == 0 {
		violations = append(violations, gooeyerrors.Violation{Field: "packages", Message: "at least one package is required"})
	}
	for i, p := range m.Themes {
		if p == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("themes[%d]", i),
				Message: "is required",
			})
		}
	}
	for i, pkg := range m.Packages {
		if pkg.Name == "" {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("packages[%d].name", i),
				Message: "is required",
			})
		}
		if len(pkg.Elements) == 0 {
			violations = append(violations, gooeyerrors.Violation{
				Field:   fmt.Sprintf("packages[%d].elements", i),
				Message: "at least one element is required",
			})
		}
		for j, el := range pkg.Elements {
			if el.Name == "" {
				violations = append(violations, gooeyerrors.Violation{
					Field:   fmt.Sprintf("packages[%d].elements[%d].name", i, j),
					Message: "is required",
				})
			}
		}
	}

	if len(violations) > 0 {
		return gooeyerrors.NewValidationError("manifest", violations)
	}
	return nil
}
