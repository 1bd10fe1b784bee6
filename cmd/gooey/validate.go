package main

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gooey-ui/gooey/internal/descriptor"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

func newValidateCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate every component descriptor in a package",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := assetRoot(args)
			if err != nil {
				return err
			}
			return runValidate(cmd, app, root)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, app *appContext, root string) error {
	m, fetcher, err := app.loadManifest(cmd, root)
	if err != nil {
		return err
	}

	loader := descriptor.NewLoader(fetcher, app.log)
	out := cmd.OutOrStdout()

	invalid := 0
	total := 0
	for _, pkg := range m.Packages {
		for _, el := range pkg.Elements {
			total++
			name := pkg.Qualified(el)

			_, err := loader.LoadAndValidate(cmd.Context(), pkg.Path(el))
			if err == nil {
				fmt.Fprintf(out, "  ok    %s\n", name)
				continue
			}

			invalid++
			var verr *gooeyerrors.ValidationError
			if stderrors.As(err, &verr) {
				fmt.Fprintf(out, "  FAIL  %s\n", name)
				for _, v := range verr.Violations {
					fmt.Fprintf(out, "        %s: %s\n", v.Field, v.Message)
				}
				continue
			}
			fmt.Fprintf(out, "  FAIL  %s\n        %v\n", name, err)
		}
	}

	fmt.Fprintf(out, "\n%d component(s) checked, %d invalid\n", total, invalid)
	if invalid > 0 {
		return fmt.Errorf("%d of %d component descriptors failed validation", invalid, total)
	}
	return nil
}
