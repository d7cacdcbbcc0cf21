package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/query"
)

// Draft carries the user-editable fields of a task.
type Draft struct {
	Text     string
	Priority model.Priority
	DueDate  model.Date
}

func (d Draft) normalize() (Draft, error) {
	d.Text = strings.TrimSpace(d.Text)
	if d.Text == "" {
		return Draft{}, fmt.Errorf("%w: %v", ErrValidation, model.ErrEmptyText)
	}
	p, err := model.ParsePriority(string(d.Priority))
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	d.Priority = p
	return d, nil
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Create appends a new task. On a persistence failure the task is still
// returned and kept; the error wraps ErrStorage.
func (s *Store) Create(d Draft) (model.Task, error) {
	d, err := d.normalize()
	if err != nil {
		return model.Task{}, err
	}

	s.history.Snapshot(s.tasks)
	now := s.now()
	task := model.Task{
		ID:        s.newID(),
		Text:      d.Text,
		Priority:  d.Priority,
		DueDate:   d.DueDate,
		CreatedAt: now,
		History:   []model.HistoryEntry{{Type: model.HistoryCreated, At: now}},
	}
	s.tasks = append(s.tasks, task)
	s.logger.Debug("task created", "id", task.ID, "priority", task.Priority)
	return task.Clone(), s.save()
}

// Edit replaces text, priority and due date. Completion state, position and
// createdAt are left alone.
func (s *Store) Edit(id string, d Draft) (model.Task, error) {
	d, err := d.normalize()
	if err != nil {
		return model.Task{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound(id)
	}

	s.history.Snapshot(s.tasks)
	now := s.now()
	t := &s.tasks[i]
	t.Text = d.Text
	t.Priority = d.Priority
	t.DueDate = d.DueDate
	t.EditedAt = &now
	t.History = append(t.History, model.HistoryEntry{Type: model.HistoryEdited, At: now})
	if s.editID == id {
		s.editID = ""
	}
	s.logger.Debug("task edited", "id", id)
	return t.Clone(), s.save()
}

// ToggleComplete flips completion, or sets it to *explicit when non-nil.
func (s *Store) ToggleComplete(id string, explicit *bool) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound(id)
	}

	s.history.Snapshot(s.tasks)
	now := s.now()
	t := &s.tasks[i]
	next := !t.Completed
	if explicit != nil {
		next = *explicit
	}
	t.Completed = next
	t.EditedAt = &now
	kind := model.HistoryReopened
	if next {
		kind = model.HistoryCompleted
	}
	t.History = append(t.History, model.HistoryEntry{Type: kind, At: now})
	s.logger.Debug("task toggled", "id", id, "completed", next)
	return t.Clone(), s.save()
}

// Delete removes the task and clears any selection or edit target on it.
func (s *Store) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}

	s.history.Snapshot(s.tasks)
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
	if s.editID == id {
		s.editID = ""
	}
	s.logger.Debug("task deleted", "id", id)
	return s.save()
}

// Reorder rearranges tasks to follow ids. Unknown and repeated ids are
// ignored; tasks missing from ids keep their relative order after the
// listed ones. Only allowed in manual sort mode.
func (s *Store) Reorder(ids []string) error {
	if s.sort != query.SortManual {
		return ErrManualSortRequired
	}

	byID := make(map[string]model.Task, len(s.tasks))
	for _, t := range s.tasks {
		byID[t.ID] = t
	}
	next := make([]model.Task, 0, len(s.tasks))
	placed := make(map[string]bool, len(s.tasks))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		next = append(next, t)
	}
	for _, t := range s.tasks {
		if !placed[t.ID] {
			next = append(next, t)
		}
	}

	s.history.Snapshot(s.tasks)
	s.tasks = next
	s.logger.Debug("tasks reordered", "requested", len(ids), "total", len(next))
	return s.save()
}

// Move shifts a task by delta positions in manual order, clamped to the
// ends of the list.
func (s *Store) Move(id string, delta int) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	return s.MoveTo(id, i+delta)
}

// MoveTo places a task at index in manual order, clamped to the list.
func (s *Store) MoveTo(id string, index int) error {
	if s.sort != query.SortManual {
		return ErrManualSortRequired
	}
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}
	index = max(0, min(index, len(s.tasks)-1))

	order := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			order = append(order, t.ID)
		}
	}
	order = append(order[:index], append([]string{id}, order[index:]...)...)
	return s.Reorder(order)
}

// Undo restores the list captured before the last mutation. It reports
// false when there is nothing to restore.
func (s *Store) Undo() (bool, error) {
	prev, ok := s.history.Restore()
	if !ok {
		return false, nil
	}
	s.tasks = prev
	s.pruneRefs()
	s.logger.Debug("undo applied", "total", len(s.tasks))
	return true, s.save()
}

// IsStorageError reports whether err only signals a failed write after an
// applied mutation.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorage)
}
