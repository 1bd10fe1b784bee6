package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/gooey-ui/gooey/internal/bootstrap"
	"github.com/gooey-ui/gooey/internal/theme"
	gooeyerrors "github.com/gooey-ui/gooey/pkg/errors"
)

var (
	activeThemeMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	themeChainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

func newThemesCmd(app *appContext) *cobra.Command {
	var single string

	cmd := &cobra.Command{
		Use:   "themes [path]",
		Short: "Show the registered themes and their inheritance chains",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := assetRoot(args)
			if err != nil {
				return err
			}
			return runThemes(cmd, app, root, single)
		},
	}

	cmd.Flags().StringVar(&single, "theme", "",
		"Resolve one theme: its extends chain and merged component override targets")

	return cmd
}

func runThemes(cmd *cobra.Command, app *appContext, root, single string) error {
	rt, err := app.loadRuntime(cmd, root)
	if rt == nil {
		return err
	}

	out := cmd.OutOrStdout()

	if single != "" {
		if derr := runThemeDetail(cmd, rt, single); derr != nil {
			return derr
		}
	} else {
		// The base theme is implicit and always selectable.
		names := rt.Engine.Themes()
		if !lo.Contains(names, theme.Base) {
			names = append(names, theme.Base)
		}
		sort.Strings(names)

		active := rt.Engine.ActiveTheme()
		for _, name := range names {
			label := name
			if name == active {
				label = activeThemeMark.Render(name + " (active)")
			}
			fmt.Fprintf(out, "%s\n", label)

			if chain := rt.Engine.ResolveChain(name); len(chain) > 0 && name != theme.Base {
				full := append([]string{theme.Base}, chain...)
				fmt.Fprintf(out, "  %s\n", themeChainStyle.Render("chain: "+strings.Join(full, " -> ")))
			}
		}
	}

	if failures := bootstrapFailures(err); len(failures) > 0 {
		fmt.Fprintln(out)
		for _, f := range failures {
			fmt.Fprintf(out, "failed: %s\n", f)
		}
		return fmt.Errorf("%d manifest entr(ies) failed to load", len(failures))
	}
	return nil
}

func runThemeDetail(cmd *cobra.Command, rt *bootstrap.Runtime, name string) error {
	if name != theme.Base && !rt.Engine.Registered(name) {
		return gooeyerrors.NewUnknownThemeError(name)
	}

	out := cmd.OutOrStdout()
	chain := append([]string{theme.Base}, rt.Engine.ResolveChain(name)...)

	fmt.Fprintf(out, "%s\n", name)
	fmt.Fprintf(out, "  %s\n", themeChainStyle.Render("chain: "+strings.Join(chain, " -> ")))

	merged := mergedOverrideTargets(cmd.Context(), rt.Engine, chain)
	if len(merged) == 0 {
		fmt.Fprintln(out, "  no component overrides")
		return nil
	}

	fmt.Fprintln(out, "  overrides:")
	tags := lo.Keys(merged)
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(out, "    %s  (from %s)\n", tag, merged[tag])
	}
	return nil
}

// mergedOverrideTargets collects the component tags each theme in the chain
// overrides, walking ancestor-first so a descendant's override for the same
// tag wins, mirroring activation precedence. Both discovered per-component
// stylesheets and overrides registered on the theme definition count.
func mergedOverrideTargets(ctx context.Context, engine *theme.Engine, chain []string) map[string]string {
	merged := make(map[string]string)

	for _, ancestor := range chain {
		if ancestor == theme.Base {
			continue
		}
		for tag := range engine.DiscoverOverrides(ctx, ancestor) {
			merged[tag] = ancestor
		}
		if def, ok := engine.Definition(ancestor); ok {
			for tag := range def.Overrides {
				merged[tag] = ancestor
			}
		}
	}

	return merged
}
