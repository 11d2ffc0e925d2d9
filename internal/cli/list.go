package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List topics with cell counts and their on-disk state",
	Long: `List every tracked topic with its notebook cell count, followed by
directories that hold a notebook but are not tracked. Inconsistencies are
reported, not repaired.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd)
		a.JSON = listJSON
		return a.Run(app.List{})
	},
}
