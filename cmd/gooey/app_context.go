package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gooey-ui/gooey/internal/bootstrap"
	"github.com/gooey-ui/gooey/internal/descriptor"
	"github.com/gooey-ui/gooey/internal/element"
	"github.com/gooey-ui/gooey/internal/logger"
	"github.com/gooey-ui/gooey/internal/manifest"
)

// appContext carries the pieces every command needs.
type appContext struct {
	log *logger.Logger
}

// assetRoot resolves the positional package-root argument, defaulting to
// the working directory.
func assetRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve package root: %w", err)
	}
	return abs, nil
}

// loadManifest reads the gooey.yaml manifest under the package root.
func (a *appContext) loadManifest(cmd *cobra.Command, root string) (*manifest.Manifest, descriptor.Fetcher, error) {
	fetcher := descriptor.NewFSFetcher(afero.NewOsFs(), root)
	m, err := manifest.Load(cmd.Context(), fetcher, manifest.File)
	if err != nil {
		return nil, nil, newCommandError("load manifest", root, err,
			"Ensure the package root contains a gooey.yaml manifest.")
	}
	return m, fetcher, nil
}

// loadRuntime bootstraps the full runtime for commands that need the
// registries populated. Components without a registered constructor fall
// back to plain base elements since the CLI only inspects them.
func (a *appContext) loadRuntime(cmd *cobra.Command, root string) (*bootstrap.Runtime, error) {
	m, fetcher, err := a.loadManifest(cmd, root)
	if err != nil {
		return nil, err
	}

	loader := bootstrap.NewLoader(bootstrap.Options{
		Manifest: m,
		Fetcher:  fetcher,
		Log:      a.log,
		FallbackFactory: func(tag string) element.Factory {
			return func(deps element.Deps) (element.Element, error) {
				return element.New(tag, deps), nil
			}
		},
	})
	return loader.Run(cmd.Context())
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
