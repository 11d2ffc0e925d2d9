package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/leuchtturm-labs/leuchtturm/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the settings file and LEUCHTTURM_* environment variables.
const (
	KeyViewerURL  = "viewer_url"
	KeyBadgeGlyph = "badge_glyph"
	KeyLogLevel   = "log.level"
	KeyLogFile    = "log.file"
	KeyLogJournal = "log.journal"
)

// Keys lists every settings key in display order.
var Keys = []string{KeyViewerURL, KeyBadgeGlyph, KeyLogLevel, KeyLogFile, KeyLogJournal}

// IsKey reports whether key is a known settings key.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// envReplacer maps nested keys onto variable names: log.level → LEUCHTTURM_LOG_LEVEL.
var envReplacer = strings.NewReplacer(".", "_")

// DefaultViewerURL is the nbviewer pattern used for README links.
const DefaultViewerURL = "https://nbviewer.jupyter.org/github/{host}/{project}/blob/master/{topic}/{topic}.ipynb"

// DefaultBadgeGlyph is repeated to form a README badge.
const DefaultBadgeGlyph = "★"

// Settings are the tool-level options that are not part of a notebook root's
// run-control file.
type Settings struct {
	ViewerURL  string
	BadgeGlyph string
	LogLevel   string
	LogFile    string
	LogJournal bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		ViewerURL:  DefaultViewerURL,
		BadgeGlyph: DefaultBadgeGlyph,
		LogLevel:   "info",
	}
}

// Dir returns the settings directory. LEUCHTTURM_CONFIG_DIR overrides the
// default of ~/.leuchtturm.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the settings directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// newViper returns a viper instance with defaults, the settings file and the
// environment wired in.
func newViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyViewerURL, d.ViewerURL)
	v.SetDefault(KeyBadgeGlyph, d.BadgeGlyph)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogJournal, d.LogJournal)

	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return v
}

// Load resolves settings for a notebook root. A .env file in root is loaded
// into the environment first (existing variables win), then the settings
// file and LEUCHTTURM_* variables are read through viper.
func Load(root string) (Settings, error) {
	envFile := filepath.Join(root, ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := newViper()
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Settings{}, fmt.Errorf("reading config file: %w", err)
	}

	return Settings{
		ViewerURL:  v.GetString(KeyViewerURL),
		BadgeGlyph: v.GetString(KeyBadgeGlyph),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFile:    v.GetString(KeyLogFile),
		LogJournal: v.GetBool(KeyLogJournal),
	}, nil
}

// Get returns a single settings value by key.
func Get(key string) string {
	v := newViper()
	_ = v.ReadInConfig()
	return v.GetString(key)
}

// Set writes a key-value pair to the settings file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	v := newViper()
	_ = v.ReadInConfig()
	v.Set(key, value)

	if err := v.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
