package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/query"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent", TypeAdd},
		{"new pay rent", TypeAdd},
		{"edit 2", TypeEdit},
		{"done", TypeDone},
		{"complete 3", TypeDone},
		{"reopen .", TypeReopen},
		{"toggle ab12", TypeToggle},
		{"rm 1", TypeDelete},
		{"undo", TypeUndo},
		{"search", TypeSearch},
		{"filter active", TypeFilter},
		{"SORT Manual", TypeSort},
		{"move 2 top", TypeMove},
		{"select 1", TypeSelect},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"", ErrCodeEmptyInput},
		{"/", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"add", ErrCodeInvalidArgument},
		{"add !high", ErrCodeInvalidArgument},
		{"add thing due:tomorrow", ErrCodeInvalidArgument},
		{"filter pending", ErrCodeInvalidArgument},
		{"sort priority", ErrCodeInvalidArgument},
		{"move 1 sideways", ErrCodeInvalidArgument},
		{"move", ErrCodeInvalidArgument},
		{"done 0", ErrCodeInvalidArgument},
		{"delete 1 2", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("add  Pay rent !HIGH due:2026-03-01 ")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	f := cmd.Add.Fields
	if f.Text != "Pay rent" || f.Priority != model.PriorityHigh || f.Due != model.NewDate(2026, 3, 1) || !f.DueSet {
		t.Fatalf("unexpected add fields: %+v", f)
	}

	cmd, err = Parse("edit ab12 due:none")
	if err != nil {
		t.Fatalf("parse edit: %v", err)
	}
	if cmd.Edit.Ref.Kind != RefPrefix || cmd.Edit.Ref.Prefix != "ab12" {
		t.Fatalf("unexpected edit ref: %+v", cmd.Edit.Ref)
	}
	if cmd.Edit.Fields == nil || !cmd.Edit.Fields.DueSet || !cmd.Edit.Fields.Due.IsZero() {
		t.Fatalf("unexpected edit fields: %+v", cmd.Edit.Fields)
	}

	cmd, err = Parse("edit")
	if err != nil || cmd.Edit.Ref.Kind != RefSelected || cmd.Edit.Fields != nil {
		t.Fatalf("bare edit = %+v, %v", cmd.Edit, err)
	}

	cmd, err = Parse("search  Milk and eggs")
	if err != nil || cmd.Search.Query != "Milk and eggs" {
		t.Fatalf("search = %+v, %v", cmd.Search, err)
	}

	cmd, err = Parse("filter COMPLETED")
	if err != nil || cmd.Filter.Filter != query.FilterCompleted {
		t.Fatalf("filter = %+v, %v", cmd.Filter, err)
	}

	cmd, err = Parse("move down")
	if err != nil || cmd.Move.Ref.Kind != RefSelected || cmd.Move.Direction != DirDown {
		t.Fatalf("move = %+v, %v", cmd.Move, err)
	}
	cmd, err = Parse("move 3 Bottom")
	if err != nil || cmd.Move.Ref.Index != 3 || cmd.Move.Direction != DirBottom {
		t.Fatalf("move = %+v, %v", cmd.Move, err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Fields.Text != "write docs" {
				t.Fatalf("unexpected title: %q", a.Fields.Text)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteTargetDispatch(t *testing.T) {
	var got []Type
	record := func(kind Type) func(TargetArgs) (Result, error) {
		return func(TargetArgs) (Result, error) {
			got = append(got, kind)
			return Result{}, nil
		}
	}
	h := Handlers{
		Done:   record(TypeDone),
		Reopen: record(TypeReopen),
		Toggle: record(TypeToggle),
		Delete: record(TypeDelete),
		Select: record(TypeSelect),
	}
	for _, in := range []string{"done", "reopen", "toggle", "delete", "select"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, h); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	want := []Type{TypeDone, TypeReopen, TypeToggle, TypeDelete, TypeSelect}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dispatch order = %v, want %v", got, want)
		}
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	for _, in := range []string{"undo", "done", "sort newest"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}

func TestParseAddKeepsUnknownBangWords(t *testing.T) {
	cmd, err := Parse("add call mom !urgent")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add == nil || cmd.Add.Fields.Text != "call mom !urgent" || cmd.Add.Fields.Priority != "" {
		t.Fatalf("unexpected add args: %#v", cmd.Add)
	}
}
