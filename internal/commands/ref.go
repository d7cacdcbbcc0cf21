package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todolist/internal/model"
)

type RefKind int

const (
	RefSelected RefKind = iota
	RefIndex
	RefPrefix
)

// Ref names a task: the selection, a 1-based row in the visible list, or
// an id prefix.
type Ref struct {
	Kind   RefKind
	Index  int
	Prefix string
}

func ParseRef(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", ".", "selected":
		return Ref{Kind: RefSelected}, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 {
			return Ref{}, invalid("row numbers start at 1, got %d", n)
		}
		return Ref{Kind: RefIndex, Index: n}, nil
	}
	return Ref{Kind: RefPrefix, Prefix: strings.ToLower(raw)}, nil
}

func (r Ref) String() string {
	switch r.Kind {
	case RefIndex:
		return strconv.Itoa(r.Index)
	case RefPrefix:
		return r.Prefix
	default:
		return "selected"
	}
}

// Resolve maps r to a task id. Rows and prefixes are matched against the
// visible list only.
func Resolve(r Ref, visible []model.Task, selectedID string) (string, error) {
	switch r.Kind {
	case RefSelected:
		if selectedID == "" {
			return "", &CommandError{Code: ErrCodeUnknownRef, Message: "no task selected"}
		}
		return selectedID, nil
	case RefIndex:
		if r.Index < 1 || r.Index > len(visible) {
			return "", &CommandError{Code: ErrCodeUnknownRef, Message: fmt.Sprintf("no task at row %d", r.Index)}
		}
		return visible[r.Index-1].ID, nil
	default:
		match := ""
		for _, t := range visible {
			if !strings.HasPrefix(strings.ToLower(t.ID), r.Prefix) {
				continue
			}
			if match != "" {
				return "", &CommandError{Code: ErrCodeAmbiguousRef, Message: fmt.Sprintf("%q matches more than one task", r.Prefix)}
			}
			match = t.ID
		}
		if match == "" {
			return "", &CommandError{Code: ErrCodeUnknownRef, Message: fmt.Sprintf("no task with id %q", r.Prefix)}
		}
		return match, nil
	}
}
