package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCmd validates a theme or stylesheet without starting the UI.
func newCheckCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a theme or stylesheet without rendering",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.themePath == "" && flags.cssPath == "" {
				return fmt.Errorf("nothing to check: pass --theme or --css")
			}
			sheet, err := loadSheet(flags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rules\n", len(sheet.Rules))
			return nil
		},
	}

	return cmd
}
