// Package remote defines the backend-agnostic interface for mirroring the
// checklist into a hosted task service.
package remote

import (
	"context"
	"fmt"
	"strings"

	"checklist/internal/checklist"
)

// DefaultListTitle is the remote list the checklist is mirrored into.
const DefaultListTitle = "Christmas Checklist"

// Remote is a hosted task service.
// Commands never import a vendor SDK directly.
type Remote interface {
	// EnsureList returns the ID of the list titled title (case-insensitive,
	// trimmed), creating it when missing. Multiple matches are an error.
	EnsureList(ctx context.Context, title string) (string, error)

	// ClearTasks deletes every task in the list.
	ClearTasks(ctx context.Context, listID string) error

	// InsertTask creates a task at the top of the list.
	InsertTask(ctx context.Context, listID, title string, completed bool) error
}

// Result summarizes a push.
type Result struct {
	ListID   string
	Inserted int
}

// Push replaces the contents of the remote list titled title with tasks.
// Tasks are inserted last-to-first so the remote order matches display order.
func Push(ctx context.Context, r Remote, title string, tasks checklist.TaskList) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultListTitle
	}

	listID, err := r.EnsureList(ctx, title)
	if err != nil {
		return Result{}, fmt.Errorf("resolve list %q: %w", title, err)
	}
	if err := r.ClearTasks(ctx, listID); err != nil {
		return Result{}, fmt.Errorf("clear list %q: %w", title, err)
	}

	res := Result{ListID: listID}
	for i := len(tasks) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t := tasks[i]
		if err := r.InsertTask(ctx, listID, t.Text, t.Checked); err != nil {
			return res, fmt.Errorf("insert task %d: %w", t.ID, err)
		}
		res.Inserted++
	}
	return res, nil
}
