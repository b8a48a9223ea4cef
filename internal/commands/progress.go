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
	Register(&ProgressCmd{})
}

// ProgressCmd implements the progress command.
type ProgressCmd struct{}

func (c *ProgressCmd) Name() string      { return "progress" }
func (c *ProgressCmd) Aliases() []string { return nil }
func (c *ProgressCmd) Synopsis() string  { return "Show completion progress" }
func (c *ProgressCmd) Usage() string     { return "checklist progress [common flags]" }
func (c *ProgressCmd) NeedsStore() bool  { return true }

func (c *ProgressCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ProgressCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	p := store.Progress()
	output.FormatProgress(out, p)
	output.FormatProgressBar(out, p)
	return exitcode.Success
}
