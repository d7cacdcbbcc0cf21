package update

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/commands"
)

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	if m.refresh <= 0 {
		return nil
	}
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return RefreshMsg{At: t} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.ForceQuit) {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Mode != ModeList {
			return m.handleInputKey(typed)
		}
		m.now = m.clock()
		return m.handleListKey(typed)
	case RefreshMsg:
		m.now = typed.At
		return m, m.tick()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	if m.Mode != ModeList {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.HelpVisible = !m.HelpVisible
		m.help.ShowAll = m.HelpVisible
	case key.Matches(msg, k.Up):
		m.Cursor--
		m.clampCursor(len(m.project().Tasks))
	case key.Matches(msg, k.Down):
		m.Cursor++
		m.clampCursor(len(m.project().Tasks))
	case key.Matches(msg, k.Select):
		if t, ok := m.cursorTask(); ok {
			_, err := m.store.ToggleSelect(t.ID)
			m.report("select", err)
		}
	case key.Matches(msg, k.Complete):
		if t, ok := m.cursorTask(); ok {
			m.report("toggle", m.setComplete(t.ID, nil))
		}
	case key.Matches(msg, k.Add):
		return m.openInput(ModeAdd, "add: ", "")
	case key.Matches(msg, k.Edit):
		t, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		task, err := m.store.BeginEdit(t.ID)
		if err != nil {
			m.report("edit", err)
			return m, nil
		}
		return m.openInput(ModeEdit, "edit: ", commands.FormatTaskFields(task))
	case key.Matches(msg, k.Delete):
		if t, ok := m.cursorTask(); ok {
			m.report("delete", m.deleteTask(t.ID))
		}
	case key.Matches(msg, k.Undo):
		m.report("undo", m.undo())
	case key.Matches(msg, k.Search):
		return m.openInput(ModeSearch, "search: ", m.store.Search())
	case key.Matches(msg, k.Clear):
		m.store.ClearSelection()
		m.store.CancelEdit()
		m.Status = StatusBar{}
	case key.Matches(msg, k.Filter):
		err := m.store.SetFilter(m.store.Filter().Next())
		m.Cursor = 0
		m.finish("filter", err, "filter: %s", m.store.Filter())
	case key.Matches(msg, k.Sort):
		err := m.store.SetSort(m.store.Sort().Next())
		m.finish("sort", err, "sort: %s", m.store.Sort())
	case key.Matches(msg, k.MoveUp):
		if t, ok := m.cursorTask(); ok {
			m.report("move", m.move(t.ID, commands.DirUp))
		}
	case key.Matches(msg, k.MoveDown):
		if t, ok := m.cursorTask(); ok {
			m.report("move", m.move(t.ID, commands.DirDown))
		}
	case key.Matches(msg, k.Palette):
		return m.openInput(ModePalette, "/", "")
	}
	return m, nil
}
