// Package main hosts the webify CLI entrypoint.
//
// The root command takes an exported deck archive and a target id, resolves
// the output root and media prefix from positional arguments, configuration
// and defaults (in that order), and hands the conversion to the pipeline
// package. Failures are translated into stable exit codes in exit.go; no other
// package decides how the process terminates.
//
// Logs go to stderr. Stdout carries only the conversion summary (a table, or
// JSON with --json) so the command composes with shell pipelines.
package main
