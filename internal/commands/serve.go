package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/server"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr string
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Serve the checklist over HTTP" }
func (c *ServeCmd) Usage() string     { return "checklist serve [common flags] [--addr <host:port>]" }
func (c *ServeCmd) NeedsStore() bool  { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	c.addr = ""
	fs.StringVar(&c.addr, "addr", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Addr
	}

	srv := server.New(store, NewLogger(errOut))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
