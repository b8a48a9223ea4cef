package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "checklist rm [common flags] <id>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(ids) > 1 {
		fmt.Fprintln(errOut, "error: rm takes a single task id")
		return exitcode.UserError
	}

	if !store.Remove(ids[0]) {
		fmt.Fprintf(errOut, "error: task not found: %d\n", ids[0])
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "Task deleted")
	}
	return exitcode.Success
}
