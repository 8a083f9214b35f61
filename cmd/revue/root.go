package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose   bool
	themePath string
	cssPath   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "revue",
		Short:         "revue renders styled terminal widgets from CSS-like stylesheets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGallery(flags)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.themePath, "theme", "", "Path to a YAML theme file")
	cmd.PersistentFlags().StringVar(&flags.cssPath, "css", "", "Path to a raw stylesheet")

	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
