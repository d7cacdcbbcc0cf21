// Package commands parses palette input into typed commands and dispatches
// them to handlers supplied by the UI.
package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/todolist/internal/query"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeDone   Type = "done"
	TypeReopen Type = "reopen"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
	TypeUndo   Type = "undo"
	TypeSearch Type = "search"
	TypeFilter Type = "filter"
	TypeSort   Type = "sort"
	TypeMove   Type = "move"
	TypeSelect Type = "select"
)

// Names lists every palette command in display order.
var Names = []Type{
	TypeAdd, TypeEdit, TypeDone, TypeReopen, TypeToggle, TypeDelete,
	TypeUndo, TypeSearch, TypeFilter, TypeSort, TypeMove, TypeSelect,
}

var aliases = map[string]Type{
	"new":      TypeAdd,
	"complete": TypeDone,
	"undone":   TypeReopen,
	"rm":       TypeDelete,
	"del":      TypeDelete,
	"find":     TypeSearch,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeUnknownRef      ErrorCode = "unknown_ref"
	ErrCodeAmbiguousRef    ErrorCode = "ambiguous_ref"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Fields TaskFields
}

// EditArgs without Fields only opens the editor on Ref.
type EditArgs struct {
	Ref    Ref
	Fields *TaskFields
}

type TargetArgs struct {
	Ref Ref
}

type SearchArgs struct {
	Query string
}

type FilterArgs struct {
	Filter query.Filter
}

type SortArgs struct {
	Sort query.Sort
}

type Direction string

const (
	DirUp     Direction = "up"
	DirDown   Direction = "down"
	DirTop    Direction = "top"
	DirBottom Direction = "bottom"
)

type MoveArgs struct {
	Ref       Ref
	Direction Direction
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Target *TargetArgs
	Search *SearchArgs
	Filter *FilterArgs
	Sort   *SortArgs
	Move   *MoveArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)
	kind := Type(head)
	if alias, ok := aliases[head]; ok {
		kind = alias
	}

	switch kind {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeEdit:
		return parseEdit(input, rest)
	case TypeDone, TypeReopen, TypeToggle, TypeDelete, TypeSelect:
		return parseTarget(input, kind, rest)
	case TypeUndo:
		return Command{Type: TypeUndo, Raw: input}, nil
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: rest}}, nil
	case TypeFilter:
		return parseFilter(input, rest)
	case TypeSort:
		return parseSort(input, rest)
	case TypeMove:
		return parseMove(input, rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	fields, err := ParseTaskFields(rest)
	if err != nil {
		return Command{}, err
	}
	if fields.Text == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Fields: fields}}, nil
}

func parseEdit(raw, rest string) (Command, error) {
	head, tail, _ := strings.Cut(rest, " ")
	ref, err := ParseRef(head)
	if err != nil {
		return Command{}, err
	}
	args := &EditArgs{Ref: ref}
	if tail = strings.TrimSpace(tail); tail != "" {
		fields, err := ParseTaskFields(tail)
		if err != nil {
			return Command{}, err
		}
		args.Fields = &fields
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: args}, nil
}

func parseTarget(raw string, kind Type, rest string) (Command, error) {
	if len(strings.Fields(rest)) > 1 {
		return Command{}, invalid("%s takes a single task reference", kind)
	}
	ref, err := ParseRef(rest)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: kind, Raw: raw, Target: &TargetArgs{Ref: ref}}, nil
}

func parseFilter(raw, rest string) (Command, error) {
	f, err := query.ParseFilter(rest)
	if err != nil {
		return Command{}, invalid("filter must be all, active or completed")
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseSort(raw, rest string) (Command, error) {
	s, err := query.ParseSort(rest)
	if err != nil {
		return Command{}, invalid("sort must be newest, oldest or manual")
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Sort: s}}, nil
}

func parseMove(raw, rest string) (Command, error) {
	parts := strings.Fields(rest)
	if len(parts) == 0 || len(parts) > 2 {
		return Command{}, invalid("move requires [ref] up|down|top|bottom")
	}
	dirRaw := parts[len(parts)-1]
	refRaw := ""
	if len(parts) == 2 {
		refRaw = parts[0]
	}
	dir := Direction(strings.ToLower(dirRaw))
	switch dir {
	case DirUp, DirDown, DirTop, DirBottom:
	default:
		return Command{}, invalid("unknown direction %q", dirRaw)
	}
	ref, err := ParseRef(refRaw)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{Ref: ref, Direction: dir}}, nil
}
