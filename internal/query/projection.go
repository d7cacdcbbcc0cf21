// Package query derives the visible task sequence and summary counts from a
// task list without mutating it.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
)

var (
	ErrInvalidFilter = errors.New("query: invalid filter")
	ErrInvalidSort   = errors.New("query: invalid sort mode")
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortManual Sort = "manual"
)

func (s Sort) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortManual:
		return true
	default:
		return false
	}
}

// Next cycles newest -> oldest -> manual -> newest.
func (s Sort) Next() Sort {
	switch s {
	case SortNewest:
		return SortOldest
	case SortOldest:
		return SortManual
	default:
		return SortNewest
	}
}

func ParseSort(raw string) (Sort, error) {
	s := Sort(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s, nil
}

type Params struct {
	Filter Filter
	Search string
	Sort   Sort
}

type Stats struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
}

type Result struct {
	Tasks []model.Task
	Stats Stats
}

// Project filters, searches and orders tasks. Unknown filter or sort values
// behave like FilterAll and SortManual. The input slice is left untouched.
func Project(tasks []model.Task, p Params, now time.Time) Result {
	visible := make([]model.Task, 0, len(tasks))
	needle := strings.ToLower(p.Search)
	for _, t := range tasks {
		if !matchesFilter(t, p.Filter) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
			continue
		}
		visible = append(visible, t.Clone())
	}

	switch p.Sort {
	case SortNewest:
		slices.SortStableFunc(visible, func(a, b model.Task) int {
			return b.LastTouched().Compare(a.LastTouched())
		})
	case SortOldest:
		slices.SortStableFunc(visible, func(a, b model.Task) int {
			return a.LastTouched().Compare(b.LastTouched())
		})
	}

	return Result{Tasks: visible, Stats: Summarize(tasks, now)}
}

// Summarize counts over the whole list, independent of filter and search.
func Summarize(tasks []model.Task, now time.Time) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Active = s.Total - s.Completed
	return s
}

func matchesFilter(t model.Task, f Filter) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}
