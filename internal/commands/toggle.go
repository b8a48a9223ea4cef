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
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Check or uncheck tasks" }
func (c *ToggleCmd) Usage() string     { return "checklist toggle [common flags] <id...>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	completed := false
	store.OnComplete(func() { completed = true })

	// Ids are validated up front so a typo does not leave a partial toggle.
	tasks := store.Tasks()
	for _, id := range ids {
		if tasks.Find(id) < 0 {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
	}

	for _, id := range ids {
		task, _ := store.Toggle(id)
		debugf(cfg, errOut, "toggled task %d checked=%t", task.ID, task.Checked)
		if cfg.Quiet {
			continue
		}
		state := "unchecked"
		if task.Checked {
			state = "checked"
		}
		fmt.Fprintf(out, "%s: %s\n", state, task.Text)
	}

	// A later id in the batch may have unchecked a task again.
	if completed && store.Tasks().AllChecked() {
		fmt.Fprintln(out, "All tasks complete!")
	}
	return exitcode.Success
}
