package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gooey-ui/gooey/internal/tui/dashboard"
)

func newDashboardCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [path]",
		Short: "Launch the interactive dashboard",
		Long:  `Launch the interactive TUI dashboard to browse a package's components and switch themes live.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := assetRoot(args)
			if err != nil {
				return err
			}
			return runDashboard(cmd, app, root)
		},
	}

	return cmd
}

func runDashboard(cmd *cobra.Command, app *appContext, root string) error {
	rt, err := app.loadRuntime(cmd, root)
	if rt == nil {
		return err
	}
	if err != nil {
		app.log.Error(err, "continuing with partially loaded package")
	}

	model := dashboard.NewModel(rt.Registry, rt.Engine)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
