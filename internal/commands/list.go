package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks and progress" }
func (c *ListCmd) Usage() string     { return "checklist list [common flags]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := store.Tasks()
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks")
		}
		return exitcode.Success
	}

	output.FormatTasks(out, tasks)
	output.FormatProgress(out, tasks.Progress())
	return exitcode.Success
}
