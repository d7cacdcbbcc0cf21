// Package undo holds a single pre-mutation snapshot of the task list.
//
// Only the most recent snapshot is kept, and it can be restored once.
package undo

import "github.com/sandeepkv93/todolist/internal/model"

type Buffer struct {
	slot []model.Task
	held bool
}

// Snapshot deep-copies tasks into the slot, replacing any earlier snapshot.
func (b *Buffer) Snapshot(tasks []model.Task) {
	b.slot = model.CloneTasks(tasks)
	if b.slot == nil {
		b.slot = []model.Task{}
	}
	b.held = true
}

// Restore hands back the held snapshot and empties the slot.
func (b *Buffer) Restore() ([]model.Task, bool) {
	if !b.held {
		return nil, false
	}
	out := b.slot
	b.slot = nil
	b.held = false
	return out, true
}

func (b *Buffer) Available() bool {
	return b.held
}
