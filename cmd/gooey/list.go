package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gooey-ui/gooey/internal/bootstrap"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(app *appContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List the components a package registers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := assetRoot(args)
			if err != nil {
				return err
			}
			return runList(cmd, app, opts, root)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, app *appContext, opts *listOptions, root string) error {
	rt, err := app.loadRuntime(cmd, root)
	if rt == nil {
		return err
	}
	// Partial failures still leave a usable registry; report them after
	// the table so the healthy components are visible.

	if opts.jsonOutput {
		return renderListJSON(cmd, rt, err)
	}
	return renderListTable(cmd, rt, err)
}

type listJSONComponent struct {
	Tag        string   `json:"tag"`
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	Themes     []string `json:"themes"`
}

type listJSONPayload struct {
	Count      int                 `json:"count"`
	Components []listJSONComponent `json:"components"`
	Failures   []string            `json:"failures,omitempty"`
}

func renderListJSON(cmd *cobra.Command, rt *bootstrap.Runtime, bootErr error) error {
	payload := listJSONPayload{}
	for _, tag := range rt.Registry.Tags() {
		d, ok := rt.Registry.Descriptor(tag)
		if !ok {
			continue
		}
		payload.Components = append(payload.Components, listJSONComponent{
			Tag:        tag,
			Name:       d.Name,
			Attributes: rt.Registry.ObservedAttributes(tag),
			Themes:     d.Themes.Available,
		})
	}
	payload.Count = len(payload.Components)
	for _, f := range bootstrapFailures(bootErr) {
		payload.Failures = append(payload.Failures, f)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderListTable(cmd *cobra.Command, rt *bootstrap.Runtime, bootErr error) error {
	out := cmd.OutOrStdout()
	tags := rt.Registry.Tags()
	if len(tags) == 0 && bootErr == nil {
		fmt.Fprintln(out, "No components registered.")
		return nil
	}

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "TAG\tNAME\tATTRIBUTES\tTHEMES")

	ok := statusMark(out, true)
	for _, tag := range tags {
		d, found := rt.Registry.Descriptor(tag)
		if !found {
			continue
		}
		fmt.Fprintf(writer, "%s %s\t%s\t%s\t%s\n",
			ok,
			tag,
			d.Name,
			strings.Join(rt.Registry.ObservedAttributes(tag), ", "),
			strings.Join(d.Themes.Available, ", "),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	failures := bootstrapFailures(bootErr)
	if len(failures) > 0 {
		bad := statusMark(out, false)
		fmt.Fprintln(out)
		for _, f := range failures {
			fmt.Fprintf(out, "%s %s\n", bad, f)
		}
		return fmt.Errorf("%d component(s) failed to load", len(failures))
	}
	return nil
}

func bootstrapFailures(err error) []string {
	if err == nil {
		return nil
	}
	var boot *gooeyerrors.BootstrapError
	if !stderrors.As(err, &boot) {
		return []string{err.Error()}
	}
	lines := make([]string, 0, len(boot.Failures))
	for _, f := range boot.Failures {
		lines = append(lines, f.String())
	}
	return lines
}

func statusMark(writer any, ok bool) string {
	unicode := false
	if file, isFile := writer.(*os.File); isFile {
		unicode = term.IsTerminal(int(file.Fd()))
	}
	switch {
	case ok && unicode:
		return "✓"
	case ok:
		return "[OK]"
	case unicode:
		return "✗"
	default:
		return "[XX]"
	}
}
