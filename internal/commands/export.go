package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/export"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as json, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "checklist export [common flags] [--format json|csv|pdf] [--output <path>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	c.format = string(export.JSON)
	c.output = ""
	fs.StringVar(&c.format, "format", string(export.JSON), "")
	fs.StringVar(&c.output, "output", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format, err := export.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	data, err := export.Render(store.Tasks(), format)
	if err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.BackendError
	}

	if c.output == "" {
		if _, err := out.Write(data); err != nil {
			return exitcode.BackendError
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.output, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.output, err)
		return exitcode.BackendError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.output)
	}
	return exitcode.Success
}
