// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"checklist/internal/remote"
)

// ErrAmbiguous is returned when multiple lists share a title.
var ErrAmbiguous = errors.New("ambiguous")

// RemoteTask is a task held by FakeRemote.
type RemoteTask struct {
	Title     string
	Completed bool
}

// FakeRemote is an in-memory implementation of remote.Remote for testing.
// Lists keep tasks top-first, like Google Tasks.
type FakeRemote struct {
	mu     sync.RWMutex
	titles map[string]string // listID -> title
	tasks  map[string][]RemoteTask
	nextID int

	// Error injection for testing
	EnsureListErr error
	ClearTasksErr error
	InsertTaskErr error
}

// NewFakeRemote creates an empty FakeRemote.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		titles: make(map[string]string),
		tasks:  make(map[string][]RemoteTask),
	}
}

// AddList adds a list with existing tasks (top-first).
func (f *FakeRemote) AddList(id, title string, tasks ...RemoteTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles[id] = title
	f.tasks[id] = append([]RemoteTask(nil), tasks...)
}

// Tasks returns the tasks of a list top-first.
func (f *FakeRemote) Tasks(listID string) []RemoteTask {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]RemoteTask(nil), f.tasks[listID]...)
}

// Lists returns the number of lists.
func (f *FakeRemote) Lists() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.titles)
}

// EnsureList implements remote.Remote.
func (f *FakeRemote) EnsureList(ctx context.Context, title string) (string, error) {
	if f.EnsureListErr != nil {
		return "", f.EnsureListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	want := strings.ToLower(strings.TrimSpace(title))
	var matches []string
	for id, t := range f.titles {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		f.nextID++
		id := fmt.Sprintf("list-%d", f.nextID)
		f.titles[id] = strings.TrimSpace(title)
		f.tasks[id] = nil
		return id, nil
	case 1:
		return matches[0], nil
	default:
		return "", ErrAmbiguous
	}
}

// ClearTasks implements remote.Remote.
func (f *FakeRemote) ClearTasks(ctx context.Context, listID string) error {
	if f.ClearTasksErr != nil {
		return f.ClearTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = nil
	return nil
}

// InsertTask implements remote.Remote.
func (f *FakeRemote) InsertTask(ctx context.Context, listID, title string, completed bool) error {
	if f.InsertTaskErr != nil {
		return f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append([]RemoteTask{{Title: title, Completed: completed}}, f.tasks[listID]...)
	return nil
}

var _ remote.Remote = (*FakeRemote)(nil)
