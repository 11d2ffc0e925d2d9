// Package config manages tool-level settings stored at ~/.leuchtturm/config.yaml:
// the README viewer URL pattern, the badge glyph, and logging options. Values
// can be overridden with LEUCHTTURM_* environment variables or a .env file in
// the notebook root.
package config
