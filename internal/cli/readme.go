package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(readmeCmd)
}

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Generate README.md with a row per topic",
	Long: `Generate README.md in the notebook root.

Each tracked topic gets a link to its notebook on the configured viewer and a
badge sized by the notebook's cell count. An existing README.md is only
replaced after confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).Run(app.Readme{})
	},
}
