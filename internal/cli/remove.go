package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a topic and its directory",
	Long: `Delete the topic directory with everything in it and stop tracking the
topic. Asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).Run(app.Remove{Name: args[0]})
	},
}
