package store

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/query"
)

// View-state setters below never snapshot and never persist.

func (s *Store) SetFilter(f query.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %v", ErrValidation, query.ErrInvalidFilter)
	}
	s.filter = f
	s.selectedID = ""
	return nil
}

func (s *Store) SetSort(mode query.Sort) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %v", ErrValidation, query.ErrInvalidSort)
	}
	s.sort = mode
	return nil
}

func (s *Store) SetSearch(q string) {
	s.search = q
	s.selectedID = ""
}

func (s *Store) Select(id string) error {
	if s.indexOf(id) < 0 {
		return notFound(id)
	}
	s.selectedID = id
	return nil
}

// ToggleSelect selects id, or clears the selection when id is already
// selected. It returns whether id ends up selected.
func (s *Store) ToggleSelect(id string) (bool, error) {
	if s.selectedID == id && id != "" {
		s.selectedID = ""
		return false, nil
	}
	if err := s.Select(id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ClearSelection() {
	s.selectedID = ""
}

func (s *Store) BeginEdit(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound(id)
	}
	s.editID = id
	return s.tasks[i].Clone(), nil
}

func (s *Store) CancelEdit() {
	s.editID = ""
}

// Projection is what a renderer needs for one frame.
type Projection struct {
	query.Result
	// Selected is set only when the selected task is currently visible.
	Selected *model.Task
	Filter   query.Filter
	Sort     query.Sort
	Search   string
}

func (s *Store) Project(now time.Time) Projection {
	res := query.Project(s.tasks, query.Params{Filter: s.filter, Search: s.search, Sort: s.sort}, now)
	p := Projection{Result: res, Filter: s.filter, Sort: s.sort, Search: s.search}
	if s.selectedID == "" {
		return p
	}
	for i := range res.Tasks {
		if res.Tasks[i].ID == s.selectedID {
			sel := res.Tasks[i]
			p.Selected = &sel
			break
		}
	}
	return p
}
