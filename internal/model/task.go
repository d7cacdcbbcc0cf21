package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority    = errors.New("model: invalid task priority")
	ErrInvalidHistoryType = errors.New("model: invalid history type")
	ErrEmptyText          = errors.New("model: task text is required")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ParsePriority normalises user input. Empty input yields PriorityMedium.
func ParsePriority(raw string) (Priority, error) {
	v := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" {
		return PriorityMedium, nil
	}
	if !v.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return v, nil
}

type HistoryType string

const (
	HistoryCreated   HistoryType = "created"
	HistoryEdited    HistoryType = "edited"
	HistoryCompleted HistoryType = "completed"
	HistoryReopened  HistoryType = "reopened"
)

func (h HistoryType) IsValid() bool {
	switch h {
	case HistoryCreated, HistoryEdited, HistoryCompleted, HistoryReopened:
		return true
	default:
		return false
	}
}

type HistoryEntry struct {
	Type HistoryType `json:"type"`
	At   time.Time   `json:"at"`
}

type Task struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Completed bool           `json:"completed"`
	Priority  Priority       `json:"priority"`
	DueDate   Date           `json:"dueDate"`
	CreatedAt time.Time      `json:"createdAt"`
	EditedAt  *time.Time     `json:"editedAt"`
	History   []HistoryEntry `json:"history"`
}

// LastTouched is the timestamp used for newest/oldest ordering.
func (t Task) LastTouched() time.Time {
	if t.EditedAt != nil {
		return *t.EditedAt
	}
	return t.CreatedAt
}

// IsOverdue reports whether the task has a due day strictly before the
// calendar day of now, in now's location. Completed tasks are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(DateOf(now))
}

// Clone returns a copy that shares no mutable state with t.
func (t Task) Clone() Task {
	out := t
	if t.EditedAt != nil {
		edited := *t.EditedAt
		out.EditedAt = &edited
	}
	if t.History != nil {
		out.History = make([]HistoryEntry, len(t.History))
		copy(out.History, t.History)
	}
	return out
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	for i, h := range t.History {
		if !h.Type.IsValid() {
			return fmt.Errorf("%w: %q at history[%d]", ErrInvalidHistoryType, h.Type, i)
		}
	}
	return nil
}

// CloneTasks deep-copies a task sequence.
func CloneTasks(in []Task) []Task {
	if in == nil {
		return nil
	}
	out := make([]Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
