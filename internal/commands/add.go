package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "checklist add [common flags] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	// Join all args with single spaces
	task, ok := store.Add(strings.Join(args, " "))
	if !ok {
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	}

	debugf(cfg, errOut, "added task %d", task.ID)
	if !cfg.Quiet {
		fmt.Fprintf(out, "Added: %s\n", task.Text)
	}
	return exitcode.Success
}
