package update

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/store"
)

func (m *Model) project() store.Projection {
	return m.store.Project(m.now)
}

// cursorTask returns the visible task under the cursor.
func (m *Model) cursorTask() (model.Task, bool) {
	visible := m.project().Tasks
	if len(visible) == 0 {
		return model.Task{}, false
	}
	m.clampCursor(len(visible))
	return visible[m.Cursor], true
}

func (m *Model) clampCursor(n int) {
	if n == 0 {
		m.Cursor = 0
		return
	}
	m.Cursor = max(0, min(m.Cursor, n-1))
}

// focusTask moves the cursor onto id when it is visible.
func (m *Model) focusTask(id string) {
	for i, t := range m.project().Tasks {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
}

func (m *Model) ok(format string, args ...any) {
	m.Status = StatusBar{Text: fmt.Sprintf(format, args...)}
}

// finish shows the success status only when err is nil.
func (m *Model) finish(action string, err error, format string, args ...any) {
	if err != nil {
		m.report(action, err)
		return
	}
	m.ok(format, args...)
}

// report maps a store or command error onto the status bar. Missing tasks
// are dropped silently; the user was pointing at something that is gone.
func (m *Model) report(action string, err error) {
	if err == nil {
		return
	}
	m.LastError = err
	var ce *commands.CommandError
	switch {
	case errors.Is(err, store.ErrNotFound):
		m.logger.Debug("ignored action on missing task", "action", action, "err", err)
		return
	case errors.Is(err, store.ErrManualSortRequired):
		m.Status = StatusBar{Text: "switch to manual sort (s) to reorder", IsError: true}
	case store.IsStorageError(err):
		m.logger.Error("save failed", "action", action, "err", err)
		m.Status = StatusBar{Text: action + " applied but not saved: " + err.Error(), IsError: true}
	case errors.As(err, &ce):
		m.Status = StatusBar{Text: ce.Message, IsError: true}
	default:
		m.Status = StatusBar{Text: action + ": " + err.Error(), IsError: true}
	}
}

func (m *Model) createTask(f commands.TaskFields) error {
	text, prio, due := f.Values()
	task, err := m.store.Create(store.Draft{Text: text, Priority: prio, DueDate: due})
	if err != nil && !store.IsStorageError(err) {
		return err
	}
	m.focusTask(task.ID)
	if err == nil {
		m.ok("added %q", task.Text)
	}
	return err
}

// editTask replaces the editable fields of id. Empty text is rejected by
// the store before anything changes.
func (m *Model) editTask(id, text string, prio model.Priority, due model.Date) error {
	task, err := m.store.Edit(id, store.Draft{Text: text, Priority: prio, DueDate: due})
	if err == nil {
		m.ok("updated %q", task.Text)
	}
	return err
}

func (m *Model) setComplete(id string, explicit *bool) error {
	task, err := m.store.ToggleComplete(id, explicit)
	if err == nil {
		if task.Completed {
			m.ok("completed %q", task.Text)
		} else {
			m.ok("reopened %q", task.Text)
		}
	}
	return err
}

func (m *Model) deleteTask(id string) error {
	task, ok := m.store.Task(id)
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, id)
	}
	err := m.store.Delete(id)
	if err == nil {
		m.ok("deleted %q (u to undo)", task.Text)
	}
	m.clampCursor(len(m.project().Tasks))
	return err
}

func (m *Model) undo() error {
	restored, err := m.store.Undo()
	if !restored && err == nil {
		m.ok("nothing to undo")
		return nil
	}
	m.clampCursor(len(m.project().Tasks))
	if err == nil {
		m.ok("undone")
	}
	return err
}

func (m *Model) move(id string, dir commands.Direction) error {
	var err error
	switch dir {
	case commands.DirUp:
		err = m.store.Move(id, -1)
	case commands.DirDown:
		err = m.store.Move(id, 1)
	case commands.DirTop:
		err = m.store.MoveTo(id, 0)
	case commands.DirBottom:
		err = m.store.MoveTo(id, m.store.Len()-1)
	}
	if err == nil || store.IsStorageError(err) {
		m.focusTask(id)
	}
	return err
}
