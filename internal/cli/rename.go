package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:     "rename <old> <new>",
	Aliases: []string{"mv"},
	Short:   "Rename a topic, its notebook and its title",
	Long: `Rename the topic directory and its notebook, rewrite the old name in the
title heading of the first cell, and update the run-control file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).Run(app.Rename{Old: args[0], New: args[1]})
	},
}
