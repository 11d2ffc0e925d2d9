// Package topic manages the topic directories of a notebook root.
//
// A topic is a directory <root>/<name> holding images/, papers/ and the
// notebook <name>.ipynb. The Manager keeps the run-control topic set and the
// directories in agreement: disagreements are reported as errors and never
// repaired silently.
package topic
