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
	Register(&ResetCmd{})
}

// ResetCmd implements the reset command.
type ResetCmd struct {
	force bool
}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Restore the default tasks" }
func (c *ResetCmd) Usage() string     { return "checklist reset [common flags] --force" }
func (c *ResetCmd) NeedsStore() bool  { return true }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {
	c.force = false
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *ResetCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if !c.force {
		fmt.Fprintln(errOut, "error: reset discards all tasks; use --force")
		return exitcode.UserError
	}

	store.Reset()
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
