package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/commands"
	"github.com/sandeepkv93/todolist/internal/store"
)

func isStorage(err error) bool  { return store.IsStorageError(err) }
func isNotFound(err error) bool { return errors.Is(err, store.ErrNotFound) }

// paletteSuggestions lists command names matching the first word typed.
func paletteSuggestions(input string) []string {
	head, _, hasArgs := strings.Cut(strings.TrimSpace(input), " ")
	if hasArgs {
		return nil
	}
	head = strings.ToLower(head)
	out := make([]string, 0, len(commands.Names))
	for _, name := range commands.Names {
		if strings.HasPrefix(string(name), head) {
			out = append(out, string(name))
		}
	}
	return out
}

func (m *Model) runPalette(raw string) {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.report("command", err)
		return
	}

	proj := m.project()
	resolve := func(ref commands.Ref) (string, error) {
		return commands.Resolve(ref, proj.Tasks, m.store.SelectedID())
	}
	target := func(apply func(id string) error) func(commands.TargetArgs) (commands.Result, error) {
		return func(a commands.TargetArgs) (commands.Result, error) {
			id, err := resolve(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{}, apply(id)
		}
	}
	yes, no := true, false

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			return commands.Result{}, m.createTask(a.Fields)
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			id, err := resolve(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			if a.Fields != nil {
				base, ok := m.store.Task(id)
				if !ok {
					return commands.Result{}, fmt.Errorf("%w: %q", store.ErrNotFound, id)
				}
				text, prio, due := a.Fields.Merge(base)
				return commands.Result{}, m.editTask(id, text, prio, due)
			}
			task, err := m.store.BeginEdit(id)
			if err != nil {
				return commands.Result{}, err
			}
			m.pendingEdit = commands.FormatTaskFields(task)
			return commands.Result{Message: fmt.Sprintf("editing %q", task.Text)}, nil
		},
		Done:   target(func(id string) error { return m.setComplete(id, &yes) }),
		Reopen: target(func(id string) error { return m.setComplete(id, &no) }),
		Toggle: target(func(id string) error { return m.setComplete(id, nil) }),
		Delete: target(m.deleteTask),
		Select: target(func(id string) error {
			if err := m.store.Select(id); err != nil {
				return err
			}
			m.focusTask(id)
			return nil
		}),
		Undo: func() (commands.Result, error) {
			return commands.Result{}, m.undo()
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.store.SetSearch(a.Query)
			m.Cursor = 0
			if a.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q", a.Query)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Cursor = 0
			return commands.Result{Message: "filter: " + string(a.Filter)}, m.store.SetFilter(a.Filter)
		},
		Sort: func(a commands.SortArgs) (commands.Result, error) {
			return commands.Result{Message: "sort: " + string(a.Sort)}, m.store.SetSort(a.Sort)
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			id, err := resolve(a.Ref)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("moved %s", a.Direction)}, m.move(id, a.Direction)
		},
	})
	if err != nil {
		m.report(string(cmd.Type), err)
		return
	}
	if res.Message != "" {
		m.ok("%s", res.Message)
	}
}
