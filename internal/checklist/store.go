package checklist

import (
	"errors"
	"io"
	"log"
	"strings"

	"checklist/internal/kv"
)

// Store is the authoritative owner of the TaskList.
//
// Every mutation is persisted before subscribers are notified. Persistence is
// best-effort: a failed write is logged and the in-memory list stays the
// source of truth for the session.
//
// Store is not safe for concurrent use; callers serialize access.
type Store struct {
	storage kv.Storage
	logger  *log.Logger
	tasks   TaskList

	onChange   []func()
	onComplete []func()
}

// New creates a Store over storage and loads the persisted list.
// A nil logger discards log output.
func New(storage kv.Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		storage: storage,
		logger:  logger,
	}
	s.Load()
	return s
}

// OnChange registers fn to run after every mutation.
func (s *Store) OnChange(fn func()) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

// OnComplete registers fn to run when a toggle checks the last unchecked task.
func (s *Store) OnComplete(fn func()) {
	if fn != nil {
		s.onComplete = append(s.onComplete, fn)
	}
}

// Load reads the persisted list, replacing the in-memory one.
// A missing, unreadable or malformed value yields the default seed list.
func (s *Store) Load() TaskList {
	s.tasks = s.read()
	return s.tasks.clone()
}

func (s *Store) read() TaskList {
	b, err := s.storage.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Printf("read %s: %v; using default tasks", StorageKey, err)
		}
		return DefaultTasks()
	}
	tasks, err := Decode(b)
	if err != nil {
		s.logger.Printf("parse %s: %v; using default tasks", StorageKey, err)
		return DefaultTasks()
	}
	return tasks
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() TaskList {
	return s.tasks.clone()
}

// Progress reports completion of the current list.
func (s *Store) Progress() Progress {
	return s.tasks.Progress()
}

// Add appends a task with the trimmed text. Empty text is ignored and
// reported with ok == false.
func (s *Store) Add(text string) (task Task, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}

	task = Task{ID: s.tasks.NextID(), Text: text}
	s.tasks = append(s.tasks, task)
	s.commit()
	return task, true
}

// Toggle flips the checked state of the task with id. An unknown id is
// ignored and reported with ok == false.
func (s *Store) Toggle(id int) (task Task, ok bool) {
	i := s.tasks.Find(id)
	if i < 0 {
		return Task{}, false
	}

	// A single flip can only complete the list if it was incomplete before.
	wasComplete := s.tasks.AllChecked()
	s.tasks[i].Checked = !s.tasks[i].Checked
	task = s.tasks[i]

	s.commit()
	if !wasComplete && s.tasks.AllChecked() {
		for _, fn := range s.onComplete {
			fn()
		}
	}
	return task, true
}

// Remove deletes the task with id, keeping the order of the rest.
func (s *Store) Remove(id int) bool {
	i := s.tasks.Find(id)
	if i < 0 {
		return false
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.commit()
	return true
}

// Reset clears the persisted value and restores the default seed list.
func (s *Store) Reset() {
	if err := s.storage.Delete(StorageKey); err != nil {
		s.logger.Printf("clear %s: %v", StorageKey, err)
	}
	s.tasks = DefaultTasks()
	s.notify()
}

// commit persists the list and notifies subscribers.
func (s *Store) commit() {
	s.save()
	s.notify()
}

func (s *Store) save() {
	b, err := Encode(s.tasks)
	if err != nil {
		s.logger.Printf("encode %s: %v", StorageKey, err)
		return
	}
	if err := s.storage.Set(StorageKey, b); err != nil {
		s.logger.Printf("save %s: %v", StorageKey, err)
	}
}

func (s *Store) notify() {
	for _, fn := range s.onChange {
		fn()
	}
}
