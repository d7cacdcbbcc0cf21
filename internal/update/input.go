package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todolist/internal/commands"
)

func (m Model) openInput(mode Mode, prompt, value string) (tea.Model, tea.Cmd) {
	m.Mode = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	switch mode {
	case ModeAdd:
		m.input.Placeholder = "task text !high due:2026-01-31"
	case ModePalette:
		m.input.Placeholder = "done 2, move . top, filter active"
	default:
		m.input.Placeholder = ""
	}
	return m, m.input.Focus()
}

func (m *Model) closeInput() {
	if m.Mode == ModeEdit {
		m.store.CancelEdit()
	}
	m.Mode = ModeList
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CancelForm):
		if m.Mode == ModeSearch {
			m.store.SetSearch("")
			m.Cursor = 0
		}
		m.closeInput()
		m.Status = StatusBar{}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.now = m.clock()
		m.submitInput()
		if v := m.pendingEdit; v != "" {
			m.pendingEdit = ""
			return m.openInput(ModeEdit, "edit: ", v)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.Mode == ModeSearch {
		m.store.SetSearch(m.input.Value())
		m.Cursor = 0
	}
	return m, cmd
}

// submitInput applies the input line. Add and edit stay open on validation
// errors so the text can be fixed.
func (m *Model) submitInput() {
	value := m.input.Value()
	switch m.Mode {
	case ModeAdd:
		fields, err := commands.ParseTaskFields(value)
		if err == nil {
			err = m.createTask(fields)
		}
		if err != nil && !isStorage(err) {
			m.report("add", err)
			return
		}
		m.report("add", err)
	case ModeEdit:
		id := m.store.EditID()
		fields, err := commands.ParseTaskFields(value)
		if err == nil {
			text, prio, due := fields.Values()
			err = m.editTask(id, text, prio, due)
		}
		if err != nil && !isStorage(err) && !isNotFound(err) {
			m.report("edit", err)
			return
		}
		m.report("edit", err)
	case ModeSearch:
		m.store.SetSearch(value)
		m.Cursor = 0
		if q := m.store.Search(); strings.TrimSpace(q) != "" {
			m.ok("search: %q", q)
		}
	case ModePalette:
		m.runPalette(value)
	}
	m.closeInput()
}
