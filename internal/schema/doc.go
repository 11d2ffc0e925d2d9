// Package schema validates JSON documents against embedded JSON Schemas.
// It is shared by the run-control loader and the notebook reader, and flattens
// the validator's error tree into a list of path-qualified issues.
package schema
