// Package cli provides command-line utilities shared by the sweeper
// commands: typed command/config errors, signal handling for graceful
// shutdown, and output formatters.
package cli
