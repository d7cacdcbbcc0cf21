package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
	Done   func(TargetArgs) (Result, error)
	Reopen func(TargetArgs) (Result, error)
	Toggle func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Select func(TargetArgs) (Result, error)
	Undo   func() (Result, error)
	Search func(SearchArgs) (Result, error)
	Filter func(FilterArgs) (Result, error)
	Sort   func(SortArgs) (Result, error)
	Move   func(MoveArgs) (Result, error)
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

func Execute(cmd Command, h Handlers) (Result, error) {
	target := func(fn func(TargetArgs) (Result, error)) (Result, error) {
		if fn == nil {
			return Result{}, missing(cmd.Type)
		}
		return fn(*cmd.Target)
	}

	switch cmd.Type {
	case TypeAdd:
		if h.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Add(*cmd.Add)
	case TypeEdit:
		if h.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Edit(*cmd.Edit)
	case TypeDone:
		return target(h.Done)
	case TypeReopen:
		return target(h.Reopen)
	case TypeToggle:
		return target(h.Toggle)
	case TypeDelete:
		return target(h.Delete)
	case TypeSelect:
		return target(h.Select)
	case TypeUndo:
		if h.Undo == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Undo()
	case TypeSearch:
		if h.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Search(*cmd.Search)
	case TypeFilter:
		if h.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Filter(*cmd.Filter)
	case TypeSort:
		if h.Sort == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Sort(*cmd.Sort)
	case TypeMove:
		if h.Move == nil {
			return Result{}, missing(cmd.Type)
		}
		return h.Move(*cmd.Move)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
