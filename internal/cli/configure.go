package cli

import (
	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
	"github.com/spf13/cobra"
)

var (
	configureHost    string
	configureProject string
	configureAuthor  string
	configureEmail   string
)

func init() {
	configureCmd.Flags().StringVar(&configureHost, "host", "", "GitHub user hosting the notebooks")
	configureCmd.Flags().StringVar(&configureProject, "project", "", "Project (repository) name")
	configureCmd.Flags().StringVar(&configureAuthor, "author", "", "Author name written into new notebooks")
	configureCmd.Flags().StringVar(&configureEmail, "email", "", "Author email written into new notebooks")
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set the host, project and author identity",
	Long: `Set the identity stored in the run-control file.

Without flags every field is asked for interactively, offering the current
value as the default. With flags only the given fields are changed and
nothing is asked. The topic set is never modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newApp(cmd).Run(app.Configure{Identity: identityFromFlags(cmd)})
	},
}

// identityFromFlags picks up only the flags given on the command line, so an
// explicit empty value still overrides.
func identityFromFlags(cmd *cobra.Command) runcontrol.Identity {
	var id runcontrol.Identity
	flags := cmd.Flags()
	if flags.Changed("host") {
		id.Host = &configureHost
	}
	if flags.Changed("project") {
		id.Project = &configureProject
	}
	if flags.Changed("author") {
		id.Author = &configureAuthor
	}
	if flags.Changed("email") {
		id.Email = &configureEmail
	}
	return id
}
