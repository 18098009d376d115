package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// topicsCmd prints the configured topic catalog.
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topic catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range GetConfig().Topics {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
