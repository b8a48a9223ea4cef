// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"
	"log"

	"checklist/internal/checklist"
	"checklist/internal/config"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or mutates the checklist.
	// Commands like help, version, login, logout return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths).
	// store is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int
}

// NewLogger returns the logger commands and the store write diagnostics to.
func NewLogger(errOut io.Writer) *log.Logger {
	return log.New(errOut, "checklist: ", 0)
}

// debugf prints a debug line to errOut when --debug is set.
func debugf(cfg *config.Config, errOut io.Writer, format string, args ...any) {
	if cfg.Debug {
		NewLogger(errOut).Printf("debug: "+format, args...)
	}
}
