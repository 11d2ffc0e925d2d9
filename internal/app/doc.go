// Package app ties the run control, topic manager, README generator and
// prompts together behind a closed set of command values. The CLI builds one
// Command per invocation and hands it to App.Run.
package app
