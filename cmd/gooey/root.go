package main

import (
	"github.com/spf13/cobra"

	"github.com/gooey-ui/gooey/internal/logger"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd(log *logger.Logger) *cobra.Command {
	flags := &rootFlags{}
	app := &appContext{log: log}

	cmd := &cobra.Command{
		Use:           "gooey",
		Short:         "Gooey loads, validates and themes declarative UI component packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				verbose, err := logger.New(logger.Options{Level: "debug", HumanReadable: true})
				if err != nil {
					return err
				}
				app.log = verbose
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newValidateCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newThemesCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
