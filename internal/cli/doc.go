// Package cli defines the Cobra command tree for the leuchtturm CLI. Each file
// in this package registers one top-level command with the root command.
// Commands only parse flags and arguments into an app.Command; loading the
// run control, prompting and touching the filesystem happen in internal/app.
package cli
