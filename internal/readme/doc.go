// Package readme renders the README.md of a notebook root: a header with the
// project and author identity followed by a two-column table that links each
// topic's notebook in an external viewer and shows a cell-count badge.
package readme
