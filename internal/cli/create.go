package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a topic with a starter notebook",
	Long: `Create <name>/ with images/ and papers/ subdirectories and a starter
notebook <name>/<name>.ipynb, then track the topic in the run-control file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).Run(app.Create{Name: args[0]})
	},
}
