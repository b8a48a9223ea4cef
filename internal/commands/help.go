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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "checklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  checklist                                         List tasks and progress
  checklist list [common flags]
  checklist add [common flags] <text...>
  checklist toggle [common flags] <id...>           Alias: done
  checklist rm [common flags] <id>                  Alias: delete
  checklist progress [common flags]
  checklist reset [common flags] --force
  checklist export [common flags] [--format json|csv|pdf] [--output <path>]
  checklist serve [common flags] [--addr <host:port>]
  checklist push [common flags] [--list <title>]
  checklist login [common flags]
  checklist logout [common flags]
  checklist help
  checklist version

Common flags:
  --config <dir>     Override config directory
  --storage <dsn>    Storage backend: memory:, postgres://..., mysql://...
                     (default: a file in the config directory)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Environment:
  CHECKLIST_STORAGE      Default for --storage
  CHECKLIST_PASSPHRASE   Encrypt the stored checklist with this passphrase
  CHECKLIST_ADDR         Default listen address for serve (default :8080)
`
