package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leuchtturm-labs/leuchtturm/internal/app"
	"github.com/leuchtturm-labs/leuchtturm/internal/branding"
	"github.com/leuchtturm-labs/leuchtturm/internal/config"
	"github.com/leuchtturm-labs/leuchtturm/internal/logging"
	"github.com/leuchtturm-labs/leuchtturm/internal/readme"
	"github.com/leuchtturm-labs/leuchtturm/internal/runcontrol"
	"github.com/leuchtturm-labs/leuchtturm/internal/topic"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootDir   string
	assumeYes bool
)

// Resolved once per invocation by setup.
var (
	settings  = config.Defaults()
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages a directory of Jupyter notebook topics: one folder per
topic with images/, papers/ and a starter notebook, tracked in ` + branding.RCFile() + `,
and a README.md that links every notebook.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Notebook root to operate on (default: $"+branding.EnvVar("DIR")+" or the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
}

// Execute runs the root command with build info injected via ldflags. A
// failing command is logged with its error kind before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		l := logger
		if l == nil {
			l = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		l.Error(err.Error(), "kind", kindOf(err))
	}
	if logCloser != nil {
		logCloser.Close()
	}
	return err
}

// setup resolves the notebook root, loads settings and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	rootDir = root

	s, err := config.Load(root)
	if err != nil {
		return err
	}
	settings = s

	l, c, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   s.LogLevel,
		File:    s.LogFile,
		Journal: s.LogJournal,
	})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	if logCloser != nil {
		logCloser.Close()
	}
	logger, logCloser = l, c
	return nil
}

func resolveRoot() (string, error) {
	dir := rootDir
	if dir == "" {
		dir = os.Getenv(branding.EnvVar("DIR"))
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("notebook root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("notebook root %s is not a directory", abs)
	}
	return abs, nil
}

// newApp binds the resolved root, settings and logger to the command's I/O.
func newApp(cmd *cobra.Command) *app.App {
	return &app.App{
		Root:     rootDir,
		Settings: settings,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
		Yes:      assumeYes,
	}
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{runcontrol.ErrConfigMissing, "ConfigMissing"},
	{runcontrol.ErrConfigCorrupt, "ConfigCorrupt"},
	{topic.ErrStateMismatch, "StateMismatch"},
	{topic.ErrAlreadyExists, "AlreadyExists"},
	{topic.ErrNotFound, "NotFound"},
	{topic.ErrRenameConflict, "RenameConflict"},
	{topic.ErrInvalidName, "InvalidName"},
	{readme.ErrNotebookUnreadable, "NotebookUnreadable"},
}

// kindOf names the error category reported in the log record.
func kindOf(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Internal"
}
