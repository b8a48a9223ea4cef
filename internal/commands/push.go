package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"checklist/internal/backend/googletasks"
	"checklist/internal/checklist"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/remote"
)

// RemoteFactory creates the remote mirror target from config.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (remote.Remote, error)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	// Remote overrides the Google Tasks client. Nil uses googletasks.New.
	Remote RemoteFactory

	list string
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return []string{"sync"} }
func (c *PushCmd) Synopsis() string  { return "Mirror tasks into Google Tasks" }
func (c *PushCmd) Usage() string     { return "checklist push [common flags] [--list <title>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	c.list = remote.DefaultListTitle
	fs.StringVar(&c.list, "list", remote.DefaultListTitle, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, store *checklist.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.list == "" {
		fmt.Fprintln(errOut, "error: list title required")
		return exitcode.UserError
	}

	factory := c.Remote
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: checklist login)")
			return exitcode.AuthError
		}
		factory = googleRemote
	}

	r, err := factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	res, err := remote.Push(ctx, r, c.list, store.Tasks())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errOut, "error: cancelled")
		} else {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		}
		return exitcode.BackendError
	}

	debugf(cfg, errOut, "pushed to list %s", res.ListID)
	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d tasks to %q\n", res.Inserted, c.list)
	}
	return exitcode.Success
}

func googleRemote(ctx context.Context, cfg *config.Config) (remote.Remote, error) {
	return googletasks.New(ctx, cfg)
}
