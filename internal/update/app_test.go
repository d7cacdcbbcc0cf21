package update

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/query"
	"github.com/sandeepkv93/todolist/internal/storage"
	"github.com/sandeepkv93/todolist/internal/store"
)

var testNow = time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, opts ...store.Option) (Model, *storage.MemoryStore) {
	t.Helper()
	disk := storage.NewMemoryStore()
	seq := 0
	base := []store.Option{
		store.WithClock(func() time.Time { return testNow }),
		store.WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("task-%d", seq)
		}),
	}
	st := store.New(disk, nil, append(base, opts...)...)
	return NewModel(st, Options{Clock: func() time.Time { return testNow }}), disk
}

func seed(t *testing.T, m Model, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := m.Store().Create(store.Draft{Text: text}); err != nil {
			t.Fatalf("seed %q: %v", text, err)
		}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEscape}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Mode != ModeList || m.Cursor != 0 || m.HelpVisible {
		t.Fatalf("unexpected defaults: %+v", m)
	}
	if m.Init() != nil {
		t.Fatal("no refresh interval means no initial command")
	}

	ticking := NewModel(m.Store(), Options{RefreshInterval: time.Second})
	if ticking.Init() == nil {
		t.Fatal("expected refresh tick command")
	}
}

func TestAddTaskWithKeyboard(t *testing.T) {
	m, disk := newTestModel(t)
	m = send(t, m, runes("a"))
	if m.Mode != ModeAdd {
		t.Fatalf("expected add mode, got %q", m.Mode)
	}
	m = send(t, m, runes("buy milk !high due:2026-02-10"), enter)

	if m.Mode != ModeList {
		t.Fatalf("expected list mode after submit, got %q", m.Mode)
	}
	tasks := m.Store().Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Text != "buy milk" || got.Priority != model.PriorityHigh || got.DueDate.String() != "2026-02-10" {
		t.Fatalf("unexpected task: %#v", got)
	}
	if disk.Saves() != 1 || m.Status.IsError {
		t.Fatalf("expected one save and ok status, got %d %+v", disk.Saves(), m.Status)
	}
}

func TestAddValidationKeepsInputOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, runes("a"), runes("   "), enter)
	if m.Mode != ModeAdd || !m.Status.IsError {
		t.Fatalf("expected add mode with error, got %q %+v", m.Mode, m.Status)
	}
	if m.Store().Len() != 0 {
		t.Fatal("blank task must not be created")
	}

	m = send(t, m, esc)
	if m.Mode != ModeList || m.InputValue() != "" {
		t.Fatalf("esc must close the input, got %q %q", m.Mode, m.InputValue())
	}
}

func TestToggleCompleteAndUndo(t *testing.T) {
	m, _ := newTestModel(t, store.WithSort(query.SortManual))
	seed(t, m, "first", "second")

	m = send(t, m, runes("j"), space)
	tasks := m.Store().Tasks()
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("expected second task completed: %#v", tasks)
	}

	m = send(t, m, runes("u"))
	if m.Store().Tasks()[1].Completed {
		t.Fatal("undo must reopen the task")
	}
	m = send(t, m, runes("u"))
	if m.Status.Text != "nothing to undo" {
		t.Fatalf("unexpected status after second undo: %+v", m.Status)
	}
}

func TestEditPrefillsAndSaves(t *testing.T) {
	m, _ := newTestModel(t)
	if _, err := m.Store().Create(store.Draft{Text: "draft", Priority: model.PriorityHigh}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m = send(t, m, runes("e"))
	if m.Mode != ModeEdit || m.InputValue() != "draft !high" {
		t.Fatalf("unexpected edit state: %q %q", m.Mode, m.InputValue())
	}
	if m.Store().EditID() != "task-1" {
		t.Fatalf("expected edit target task-1, got %q", m.Store().EditID())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("final !high"), enter)
	got, _ := m.Store().Task("task-1")
	if got.Text != "final" || got.Priority != model.PriorityHigh {
		t.Fatalf("unexpected edited task: %#v", got)
	}
	if m.Store().EditID() != "" || m.Mode != ModeList {
		t.Fatal("saving must leave edit mode")
	}
}

func seedRent(t *testing.T, m Model) {
	t.Helper()
	d := store.Draft{Text: "pay rent", Priority: model.PriorityHigh, DueDate: model.NewDate(2026, 3, 1)}
	if _, err := m.Store().Create(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestEditRemovingPriorityTokenResetsToMedium(t *testing.T) {
	m, _ := newTestModel(t)
	seedRent(t, m)

	m = send(t, m, runes("e"))
	if m.InputValue() != "pay rent !high due:2026-03-01" {
		t.Fatalf("unexpected prefill %q", m.InputValue())
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlU}, runes("pay rent due:2026-03-01"), enter)
	got, _ := m.Store().Task("task-1")
	if got.Priority != model.PriorityMedium || got.DueDate != model.NewDate(2026, 3, 1) {
		t.Fatalf("unexpected edited task: %#v", got)
	}
}

func TestEditRemovingDueTokenClearsDate(t *testing.T) {
	m, _ := newTestModel(t)
	seedRent(t, m)

	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("pay rent !high"), enter)
	got, _ := m.Store().Task("task-1")
	if !got.DueDate.IsZero() || got.Priority != model.PriorityHigh {
		t.Fatalf("unexpected edited task: %#v", got)
	}
}

func TestEditBlankTextIsRejectedWithoutChange(t *testing.T) {
	m, disk := newTestModel(t)
	seedRent(t, m)
	saves := disk.Saves()

	m = send(t, m, runes("e"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes("   "), enter)
	if m.Mode != ModeEdit || !m.Status.IsError {
		t.Fatalf("blank edit must stay open with an error, got mode %q status %+v", m.Mode, m.Status)
	}
	if !errors.Is(m.LastError, store.ErrValidation) {
		t.Fatalf("expected validation error, got %v", m.LastError)
	}
	got, _ := m.Store().Task("task-1")
	if got.Text != "pay rent" || len(got.History) != 1 || got.EditedAt != nil {
		t.Fatalf("blank edit must not touch the task: %#v", got)
	}
	if disk.Saves() != saves {
		t.Fatalf("blank edit must not persist, saves %d -> %d", saves, disk.Saves())
	}
}

func TestEditCancelClearsTarget(t *testing.T) {
	m, _ := newTestModel(t)
	seed(t, m, "draft")
	m = send(t, m, runes("e"), esc)
	if m.Store().EditID() != "" {
		t.Fatal("cancel must clear edit target")
	}
	if got, _ := m.Store().Task("task-1"); got.Text != "draft" {
		t.Fatalf("cancel must not change task: %#v", got)
	}
}

func TestSelectShowsPreviewAndDeleteClears(t *testing.T) {
	m, _ := newTestModel(t)
	seed(t, m, "write report")

	m = send(t, m, enter)
	if m.Store().SelectedID() != "task-1" {
		t.Fatalf("expected selection, got %q", m.Store().SelectedID())
	}
	if out := m.View(); !strings.Contains(out, "Activity") {
		t.Fatalf("expected preview in view:\n%s", out)
	}

	m = send(t, m, runes("d"))
	if m.Store().Len() != 0 || m.Store().SelectedID() != "" {
		t.Fatal("delete must remove task and selection")
	}
	if !strings.Contains(m.View(), "No tasks yet") {
		t.Fatal("expected empty state after delete")
	}
}

func TestEscClearsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	seed(t, m, "a")
	m = send(t, m, enter, esc)
	if m.Store().SelectedID() != "" {
		t.Fatal("esc must clear selection")
	}
}

func TestMoveRequiresManualSort(t *testing.T) {
	m, _ := newTestModel(t)
	seed(t, m, "a", "b")
	m = send(t, m, runes("K"))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "manual sort") {
		t.Fatalf("expected manual sort hint, got %+v", m.Status)
	}
}

func TestMoveInManualSortFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t, store.WithSort(query.SortManual))
	seed(t, m, "a", "b", "c")

	m = send(t, m, runes("J"), runes("J"))
	var order []string
	for _, task := range m.Store().Tasks() {
		order = append(order, task.Text)
	}
	if strings.Join(order, ",") != "b,c,a" {
		t.Fatalf("unexpected order: %v", order)
	}
	if m.Cursor != 2 {
		t.Fatalf("cursor must follow moved task, got %d", m.Cursor)
	}
}

func TestFilterAndSortCycle(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, runes("f"))
	if m.Store().Filter() != query.FilterActive {
		t.Fatalf("expected active filter, got %q", m.Store().Filter())
	}
	m = send(t, m, runes("s"), runes("s"))
	if m.Store().Sort() != query.SortManual {
		t.Fatalf("expected manual sort, got %q", m.Store().Sort())
	}
	if !strings.Contains(m.View(), "No active tasks") {
		t.Fatal("expected filtered empty state")
	}
}

func TestFinishKeepsErrorStatus(t *testing.T) {
	m, _ := newTestModel(t)
	m.finish("filter", fmt.Errorf("%w: bad filter", store.ErrValidation), "filter: %s", "all")
	if !m.Status.IsError || m.Status.Text == "filter: all" {
		t.Fatalf("error must not be replaced by success status: %+v", m.Status)
	}

	m.finish("filter", nil, "filter: %s", "all")
	if m.Status.IsError || m.Status.Text != "filter: all" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestLiveSearch(t *testing.T) {
	m, _ := newTestModel(t)
	seed(t, m, "buy milk", "call mom")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("MIL"))
	if m.Mode != ModeSearch || m.Store().Search() != "MIL" {
		t.Fatalf("expected live search, got %q %q", m.Mode, m.Store().Search())
	}
	if got := len(m.Store().Project(testNow).Tasks); got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}

	m = send(t, m, esc)
	if m.Store().Search() != "" || m.Mode != ModeList {
		t.Fatal("esc must clear search")
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newTestModel(t, store.WithSort(query.SortManual))
	seed(t, m, "a", "b", "c")

	m = send(t, m, runes("/"), runes("done 2"), enter)
	if got, _ := m.Store().Task("task-2"); !got.Completed {
		t.Fatal("palette done must complete row 2")
	}
	if m.Mode != ModeList {
		t.Fatalf("palette must close after running, got %q", m.Mode)
	}

	m = send(t, m, runes("/"), runes("move 3 top"), enter)
	if m.Store().Tasks()[0].ID != "task-3" {
		t.Fatalf("expected task-3 first, got %#v", m.Store().Tasks()[0])
	}

	m = send(t, m, runes("/"), runes("filter completed"), enter)
	if m.Store().Filter() != query.FilterCompleted || m.Status.Text != "filter: completed" {
		t.Fatalf("unexpected filter state: %q %+v", m.Store().Filter(), m.Status)
	}

	m = send(t, m, runes("/"), runes("edit 1"), enter)
	if m.Mode != ModeEdit || m.InputValue() != "b" || m.Store().EditID() != "task-2" {
		t.Fatalf("palette edit must open the editor: %q %q %q", m.Mode, m.InputValue(), m.Store().EditID())
	}
	m = send(t, m, esc)

	m = send(t, m, runes("/"), runes("bogus"), enter)
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}

	m = send(t, m, runes("/"), runes("delete 9"), enter)
	if !m.Status.IsError || m.Store().Len() != 3 {
		t.Fatalf("unknown row must be reported, got %+v", m.Status)
	}
}

func TestPaletteSuggestions(t *testing.T) {
	got := paletteSuggestions("s")
	if strings.Join(got, ",") != "search,sort,select" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	if paletteSuggestions("sort newest") != nil {
		t.Fatal("no suggestions once arguments start")
	}
}

func TestReportIgnoresMissingTask(t *testing.T) {
	m, _ := newTestModel(t)
	m.Status = StatusBar{Text: "previous"}
	m.report("delete", fmt.Errorf("%w: %q", store.ErrNotFound, "gone"))
	if m.Status.Text != "previous" || m.Status.IsError {
		t.Fatalf("missing task must be silent, got %+v", m.Status)
	}
}

func TestStorageFailureKeepsTaskAndWarns(t *testing.T) {
	m, disk := newTestModel(t)
	disk.SaveErr = errors.New("disk full")

	m = send(t, m, runes("a"), runes("keep me"), enter)
	if m.Store().Len() != 1 {
		t.Fatal("task must be kept in memory")
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "not saved") {
		t.Fatalf("expected save warning, got %+v", m.Status)
	}
	if m.Mode != ModeList {
		t.Fatalf("storage failure must still close the input, got %q", m.Mode)
	}
}

func TestRefreshMsgMovesClockAndReschedules(t *testing.T) {
	m, disk := newTestModel(t)
	m.refresh = time.Second
	seed(t, m, "a")
	saves := disk.Saves()

	later := testNow.Add(2 * time.Hour)
	updated, cmd := m.Update(RefreshMsg{At: later})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected next tick")
	}
	if !next.now.Equal(later) || disk.Saves() != saves {
		t.Fatal("refresh must only move the render clock")
	}
	if !strings.Contains(next.View(), "2 hr ago") {
		t.Fatal("expected relative time to reflect refresh")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, SetStatusMsg{Text: "ready"})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = send(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}

	m = send(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", m.Status)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel")
	}
	m = send(t, m, runes("?"))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t)
	out := m.View()
	for _, want := range []string{"todolist", "filter: all", "sort: newest", "No tasks yet", "0 / 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
