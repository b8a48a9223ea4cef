package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"checklist/internal/checklist"
	"checklist/internal/commands"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/kv/memory"
	"checklist/internal/remote"
	"checklist/internal/testutil"
)

// newStore returns a store seeded with the given tasks, or the defaults if
// tasks is nil.
func newStore(t *testing.T, tasks checklist.TaskList) (*checklist.Store, *memory.Storage) {
	t.Helper()
	storage := memory.New()
	if tasks != nil {
		b, err := checklist.Encode(tasks)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if err := storage.Set(checklist.StorageKey, b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return checklist.New(storage, nil), storage
}

// newFlagSet registers cmd's flags with their defaults, as the dispatcher does.
func newFlagSet(cmd commands.Command) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	return fs
}

func runCommand(t *testing.T, cmd commands.Command, store *checklist.Store, args []string, quiet bool) (string, string, int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
		Addr:  config.DefaultAddr,
	}
	code := cmd.Run(context.Background(), cfg, store, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func persisted(t *testing.T, storage *memory.Storage) checklist.TaskList {
	t.Helper()
	b, err := storage.Get(checklist.StorageKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	tasks, err := checklist.Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return tasks
}

func TestListCommand_Defaults(t *testing.T) {
	store, _ := newStore(t, nil)

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.Golden(t, "list_default", []byte(stdout))
}

func TestListCommand_Empty(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{})

	stdout, _, code := runCommand(t, &commands.ListCmd{}, store, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks\n" {
		t.Errorf("expected 'no tasks\\n', got %q", stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListCmd{}, store, nil, true)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	store, _ := newStore(t, nil)

	_, stderr, code := runCommand(t, &commands.ListCmd{}, store, []string{"extra"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAddCommand(t *testing.T) {
	store, storage := newStore(t, nil)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, []string{"Call", " grandma "}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Added: Call  grandma\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}

	tasks := persisted(t, storage)
	last := tasks[len(tasks)-1]
	if last.ID != 11 || last.Text != "Call  grandma" || last.Checked {
		t.Errorf("unexpected persisted task: %+v", last)
	}
}

func TestAddCommand_EmptyText(t *testing.T) {
	for _, args := range [][]string{nil, {"   "}, {"", "\t"}} {
		store, storage := newStore(t, nil)

		stdout, stderr, code := runCommand(t, &commands.AddCmd{}, store, args, false)

		if code != exitcode.UserError {
			t.Errorf("args %q: expected exit code %d, got %d", args, exitcode.UserError, code)
		}
		if stdout != "" {
			t.Errorf("args %q: expected no stdout, got %q", args, stdout)
		}
		if stderr != "error: task text required\n" {
			t.Errorf("args %q: unexpected stderr %q", args, stderr)
		}
		if storage.Len() != 0 {
			t.Errorf("args %q: nothing should be persisted", args)
		}
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	store, _ := newStore(t, nil)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, store, []string{"x"}, true)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestToggleCommand(t *testing.T) {
	store, storage := newStore(t, nil)

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, store, []string{"1", "#2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	want := "unchecked: Buy gifts for family\nchecked: Decorate the Christmas tree\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}

	tasks := persisted(t, storage)
	if tasks[0].Checked || !tasks[1].Checked {
		t.Errorf("unexpected persisted state: %+v", tasks[:2])
	}
}

func TestToggleCommand_CompletesList(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{
		{ID: 1, Text: "a", Checked: true},
		{ID: 2, Text: "b"},
	})

	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, store, []string{"2"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "All tasks complete!\n" {
		t.Errorf("expected celebration, got %q", stdout)
	}
}

func TestToggleCommand_NoCelebrationWhenUnchecking(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{
		{ID: 1, Text: "a", Checked: true},
		{ID: 2, Text: "b", Checked: true},
	})

	stdout, _, _ := runCommand(t, &commands.ToggleCmd{}, store, []string{"2"}, false)
	if strings.Contains(stdout, "All tasks complete!") {
		t.Errorf("unexpected celebration: %q", stdout)
	}
}

func TestToggleCommand_BatchEndingIncomplete(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{
		{ID: 1, Text: "a", Checked: true},
		{ID: 2, Text: "b"},
	})

	stdout, _, code := runCommand(t, &commands.ToggleCmd{}, store, []string{"2", "2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "checked: b\nunchecked: b\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if store.Tasks().AllChecked() {
		t.Error("list should not be complete")
	}
}

func TestToggleCommand_NotFound(t *testing.T) {
	store, storage := newStore(t, nil)

	stdout, stderr, code := runCommand(t, &commands.ToggleCmd{}, store, []string{"2", "99"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: task not found: 99\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if storage.Len() != 0 {
		t.Error("no toggle should be persisted when any id is unknown")
	}
}

func TestToggleCommand_BadID(t *testing.T) {
	store, _ := newStore(t, nil)

	_, stderr, code := runCommand(t, &commands.ToggleCmd{}, store, []string{"abc"}, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid task id: abc\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	_, stderr, code = runCommand(t, &commands.ToggleCmd{}, store, nil, false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task id required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRmCommand(t *testing.T) {
	store, storage := newStore(t, nil)

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, store, []string{"3"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Task deleted\n" {
		t.Errorf("expected 'Task deleted\\n', got %q", stdout)
	}

	tasks := persisted(t, storage)
	if len(tasks) != 9 {
		t.Fatalf("expected 9 tasks, got %d", len(tasks))
	}
	if tasks.Find(3) >= 0 {
		t.Error("task 3 should be gone")
	}
	if tasks[2].ID != 4 {
		t.Errorf("expected order preserved, got id %d at index 2", tasks[2].ID)
	}
}

func TestRmCommand_Errors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"42"}, "error: task not found: 42\n"},
		{[]string{"1", "2"}, "error: rm takes a single task id\n"},
		{nil, "error: task id required\n"},
	}
	for _, tt := range tests {
		store, _ := newStore(t, nil)

		_, stderr, code := runCommand(t, &commands.RmCmd{}, store, tt.args, false)
		if code != exitcode.UserError {
			t.Errorf("args %q: expected exit code %d, got %d", tt.args, exitcode.UserError, code)
		}
		if stderr != tt.want {
			t.Errorf("args %q: expected %q, got %q", tt.args, tt.want, stderr)
		}
	}
}

func TestProgressCommand(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{
		{ID: 1, Text: "a", Checked: true},
		{ID: 2, Text: "b", Checked: true},
		{ID: 3, Text: "c"},
		{ID: 4, Text: "d"},
	})

	stdout, _, code := runCommand(t, &commands.ProgressCmd{}, store, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	want := "2 of 4 tasks completed (50%)\n[##########----------]  50% medium\n"
	if stdout != want {
		t.Errorf("expected %q, got %q", want, stdout)
	}
}

func TestResetCommand_RequiresForce(t *testing.T) {
	store, storage := newStore(t, checklist.TaskList{{ID: 1, Text: "only"}})

	cmd := &commands.ResetCmd{}
	newFlagSet(cmd)
	_, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "--force") {
		t.Errorf("expected hint about --force, got %q", stderr)
	}
	if len(persisted(t, storage)) != 1 {
		t.Error("storage should be untouched")
	}
}

func TestResetCommand_Force(t *testing.T) {
	store, storage := newStore(t, checklist.TaskList{{ID: 1, Text: "only"}})

	cmd := &commands.ResetCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"--force"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, _, code := runCommand(t, cmd, store, fs.Args(), false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if storage.Len() != 0 {
		t.Error("persisted value should be cleared")
	}
	if got := store.Tasks(); len(got) != 10 {
		t.Errorf("expected 10 default tasks, got %d", len(got))
	}
}

func TestExportCommand_Stdout(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{{ID: 1, Text: "a", Checked: true}})

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"--format", "csv"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, _, code := runCommand(t, cmd, store, fs.Args(), false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "id,text,checked\n1,a,true\n" {
		t.Errorf("unexpected csv: %q", stdout)
	}
}

func TestExportCommand_File(t *testing.T) {
	store, _ := newStore(t, nil)
	path := filepath.Join(t.TempDir(), "out.json")

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"--output", path}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdout, _, code := runCommand(t, cmd, store, fs.Args(), false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "wrote "+path+"\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var tasks checklist.TaskList
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatalf("export is not json: %v", err)
	}
	if len(tasks) != 10 || tasks[0].Text != "Buy gifts for family" {
		t.Errorf("unexpected export: %+v", tasks)
	}
}

func TestExportCommand_BadFormat(t *testing.T) {
	store, _ := newStore(t, nil)

	cmd := &commands.ExportCmd{}
	fs := newFlagSet(cmd)
	if err := fs.Parse([]string{"--format", "xml"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, stderr, code := runCommand(t, cmd, store, fs.Args(), false)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: ") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestPushCommand(t *testing.T) {
	store, _ := newStore(t, checklist.TaskList{
		{ID: 1, Text: "first", Checked: true},
		{ID: 2, Text: "second"},
	})
	fake := testutil.NewFakeRemote()

	cmd := &commands.PushCmd{
		Remote: func(ctx context.Context, cfg *config.Config) (remote.Remote, error) {
			return fake, nil
		},
	}
	newFlagSet(cmd)

	stdout, stderr, code := runCommand(t, cmd, store, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "pushed 2 tasks to \"Christmas Checklist\"\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	if fake.Lists() != 1 {
		t.Errorf("expected 1 remote list, got %d", fake.Lists())
	}
	want := []testutil.RemoteTask{
		{Title: "first", Completed: true},
		{Title: "second"},
	}
	if got := fake.Tasks("list-1"); !reflect.DeepEqual(got, want) {
		t.Errorf("remote tasks = %+v, want %+v", got, want)
	}
}

func TestPushCommand_RemoteFactoryError(t *testing.T) {
	store, _ := newStore(t, nil)
	cmd := &commands.PushCmd{
		Remote: func(ctx context.Context, cfg *config.Config) (remote.Remote, error) {
			return nil, errors.New("token expired")
		},
	}
	newFlagSet(cmd)

	_, stderr, code := runCommand(t, cmd, store, nil, false)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: auth error: token expired\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestPushCommand_NotLoggedIn(t *testing.T) {
	store, _ := newStore(t, nil)
	cmd := &commands.PushCmd{}
	newFlagSet(cmd)

	_, stderr, code := runCommand(t, cmd, store, nil, false)
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in ") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "checklist "+commands.Version+"\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestDefaultRegistry_Aliases(t *testing.T) {
	aliases := map[string]string{
		"done":   "toggle",
		"delete": "rm",
		"ls":     "list",
		"create": "add",
		"sync":   "push",
	}
	for alias, name := range aliases {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ToggleCmd{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register(&commands.ToggleCmd{}); err == nil {
		t.Error("expected error registering a duplicate command")
	}
	if got := len(r.All()); got != 1 {
		t.Errorf("expected 1 command, got %d", got)
	}
}
