// Package store owns the task list and its view state.
//
// All writes go through the mutation methods, which snapshot for undo,
// append history and persist the full list. A Store is owned by a single
// goroutine (the UI loop) and is not safe for concurrent use.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/query"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/undo"
)

var (
	ErrValidation         = errors.New("store: validation failed")
	ErrNotFound           = errors.New("store: task not found")
	ErrManualSortRequired = fmt.Errorf("%w: reorder requires manual sort", ErrValidation)
	ErrStorage            = errors.New("store: persist failed")
)

type (
	Clock  func() time.Time
	IDFunc func() string
)

type Store struct {
	tasks      []model.Task
	filter     query.Filter
	sort       query.Sort
	search     string
	selectedID string
	editID     string
	history    undo.Buffer

	persist storage.Storage
	now     Clock
	newID   IDFunc
	logger  *log.Logger
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.now = c
		}
	}
}

func WithIDFunc(f IDFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithFilter(f query.Filter) Option {
	return func(s *Store) {
		if f.IsValid() {
			s.filter = f
		}
	}
}

func WithSort(mode query.Sort) Option {
	return func(s *Store) {
		if mode.IsValid() {
			s.sort = mode
		}
	}
}

// New builds a store around an already-loaded task list. Duplicate ids and
// blank tasks are dropped so the list invariants hold from the start.
func New(persist storage.Storage, tasks []model.Task, opts ...Option) *Store {
	s := &Store{
		filter:  query.FilterAll,
		sort:    query.SortNewest,
		persist: persist,
		now:     utcNow,
		newID:   uuid.NewString,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = s.sanitize(tasks)
	return s
}

// Open loads tasks from persist and builds a store around them.
func Open(ctx context.Context, persist storage.Storage, opts ...Option) (*Store, error) {
	if persist == nil {
		return nil, errors.New("store: nil storage")
	}
	tasks, err := persist.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}
	return New(persist, tasks, opts...), nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (s *Store) sanitize(in []model.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		if seen[t.ID] {
			s.logger.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		t = t.Clone()
		if t.History == nil {
			t.History = []model.HistoryEntry{}
		}
		if !t.Priority.IsValid() {
			s.logger.Warn("resetting unknown priority", "id", t.ID, "priority", t.Priority)
			t.Priority = model.PriorityMedium
		}
		if err := t.Validate(); err != nil {
			s.logger.Warn("dropping invalid task", "id", t.ID, "err", err)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// Tasks returns a deep copy of the stored sequence in manual order.
func (s *Store) Tasks() []model.Task {
	out := model.CloneTasks(s.tasks)
	if out == nil {
		out = []model.Task{}
	}
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Task(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

func (s *Store) Filter() query.Filter { return s.filter }
func (s *Store) Sort() query.Sort     { return s.sort }
func (s *Store) Search() string       { return s.search }
func (s *Store) SelectedID() string   { return s.selectedID }
func (s *Store) EditID() string       { return s.editID }
func (s *Store) CanUndo() bool        { return s.history.Available() }

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// save writes the whole list. The in-memory change stands even when the
// write fails; the returned error wraps ErrStorage.
func (s *Store) save() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(context.Background(), s.tasks); err != nil {
		s.logger.Error("persist tasks", "count", len(s.tasks), "err", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// pruneRefs clears selection and edit target that no longer resolve.
func (s *Store) pruneRefs() {
	if s.selectedID != "" && s.indexOf(s.selectedID) < 0 {
		s.selectedID = ""
	}
	if s.editID != "" && s.indexOf(s.editID) < 0 {
		s.editID = ""
	}
}
