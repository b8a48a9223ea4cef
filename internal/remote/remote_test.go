package remote_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"checklist/internal/checklist"
	"checklist/internal/remote"
	"checklist/internal/testutil"
)

func TestPush_MatchesDisplayOrder(t *testing.T) {
	fr := testutil.NewFakeRemote()
	tasks := checklist.TaskList{
		{ID: 1, Text: "Buy gifts for family", Checked: true},
		{ID: 2, Text: "Wrap presents"},
		{ID: 7, Text: "Make hot chocolate"},
	}

	res, err := remote.Push(context.Background(), fr, "", tasks)
	if err != nil {
		t.Fatalf("Push() err = %v, want nil", err)
	}
	if res.Inserted != 3 {
		t.Fatalf("Inserted = %d, want 3", res.Inserted)
	}

	want := []testutil.RemoteTask{
		{Title: "Buy gifts for family", Completed: true},
		{Title: "Wrap presents"},
		{Title: "Make hot chocolate"},
	}
	if got := fr.Tasks(res.ListID); !reflect.DeepEqual(got, want) {
		t.Fatalf("remote tasks = %+v, want %+v", got, want)
	}
}

func TestPush_ReplacesExistingList(t *testing.T) {
	fr := testutil.NewFakeRemote()
	fr.AddList("xmas", "christmas checklist", testutil.RemoteTask{Title: "stale"})

	res, err := remote.Push(context.Background(), fr, remote.DefaultListTitle, checklist.TaskList{{ID: 1, Text: "fresh"}})
	if err != nil {
		t.Fatalf("Push() err = %v, want nil", err)
	}
	if res.ListID != "xmas" {
		t.Fatalf("ListID = %q, want xmas", res.ListID)
	}
	if fr.Lists() != 1 {
		t.Fatalf("Lists() = %d, want 1", fr.Lists())
	}
	if got := fr.Tasks("xmas"); len(got) != 1 || got[0].Title != "fresh" {
		t.Fatalf("remote tasks = %+v", got)
	}
}

func TestPush_Errors(t *testing.T) {
	boom := errors.New("boom")

	fr := testutil.NewFakeRemote()
	fr.EnsureListErr = boom
	if _, err := remote.Push(context.Background(), fr, "x", nil); !errors.Is(err, boom) {
		t.Errorf("EnsureList failure: err = %v, want %v", err, boom)
	}

	fr = testutil.NewFakeRemote()
	fr.ClearTasksErr = boom
	if _, err := remote.Push(context.Background(), fr, "x", nil); !errors.Is(err, boom) {
		t.Errorf("ClearTasks failure: err = %v, want %v", err, boom)
	}

	fr = testutil.NewFakeRemote()
	fr.InsertTaskErr = boom
	res, err := remote.Push(context.Background(), fr, "x", checklist.TaskList{{ID: 1, Text: "a"}})
	if !errors.Is(err, boom) {
		t.Errorf("InsertTask failure: err = %v, want %v", err, boom)
	}
	if res.Inserted != 0 {
		t.Errorf("Inserted = %d, want 0", res.Inserted)
	}
}

func TestPush_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := remote.Push(ctx, testutil.NewFakeRemote(), "x", checklist.DefaultTasks())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want %v", err, context.Canceled)
	}
}
