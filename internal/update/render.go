package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/todolist/internal/model"
	"github.com/sandeepkv93/todolist/internal/store"
	"github.com/sandeepkv93/todolist/internal/views"
)

const timestampLayout = "2006-01-02 15:04"

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	proj := m.store.Project(m.now)
	m.clampCursor(len(proj.Tasks))

	right := views.RenderOverview(views.OverviewData{
		Total:     proj.Stats.Total,
		Completed: proj.Stats.Completed,
		Active:    proj.Stats.Active,
		Overdue:   proj.Stats.Overdue,
		BarWidth:  24,
	})
	_, paneWidth := views.PaneWidths(m.width)
	right += "\n\n" + views.RenderPreviewPane(m.previewData(proj), m.theme, paneWidth)

	header := views.RenderHeader(views.HeaderData{
		Filter:  string(proj.Filter),
		Sort:    string(proj.Sort),
		Search:  proj.Search,
		CanUndo: m.store.CanUndo(),
	})

	data := views.AppData{
		Width:       m.width,
		Header:      header,
		LeftPane:    m.renderList(proj),
		RightPane:   right,
		StatusLine:  m.Status.Text,
		StatusError: m.Status.IsError,
	}
	if m.Mode != ModeList {
		data.Prompt = m.input.View()
		if m.Mode == ModePalette {
			data.Prompt = views.RenderCommandPalette(m.input.View(), paletteSuggestions(m.input.Value()))
		}
		data.Footer = m.help.View(formKeys{k: m.keys})
	} else {
		data.Footer = m.help.View(m.keys)
	}
	if m.HelpVisible {
		data.Overlay = views.RenderHelpPanel(m.help.View(m.keys))
		data.Footer = ""
	}
	return views.RenderApp(data)
}

func (m Model) renderList(proj store.Projection) string {
	rows := make([]views.TaskRowData, 0, len(proj.Tasks))
	for _, t := range proj.Tasks {
		rows = append(rows, views.TaskRowData{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  string(t.Priority),
			Completed: t.Completed,
			Overdue:   t.IsOverdue(m.now),
			Due:       t.DueDate.String(),
			Touched:   views.FormatRelativeTime(t.LastTouched(), m.now),
		})
	}
	return views.RenderTaskList(views.TaskListData{
		Rows:       rows,
		Cursor:     m.Cursor,
		SelectedID: m.store.SelectedID(),
		Filter:     string(proj.Filter),
		Empty:      m.store.Len() == 0,
	})
}

func (m Model) previewData(proj store.Projection) *views.PreviewData {
	if proj.Selected == nil {
		return nil
	}
	t := proj.Selected
	return &views.PreviewData{
		Text:      t.Text,
		Priority:  string(t.Priority),
		Due:       t.DueDate.String(),
		Created:   t.CreatedAt.Local().Format(timestampLayout),
		Completed: t.Completed,
		Overdue:   t.IsOverdue(m.now),
		History:   historyLines(t.History, m.now),
	}
}

func historyLines(entries []model.HistoryEntry, now time.Time) []views.HistoryLine {
	out := make([]views.HistoryLine, 0, len(entries))
	for _, h := range entries {
		out = append(out, views.HistoryLine{
			Type: strings.ToLower(string(h.Type)),
			When: views.FormatRelativeTime(h.At, now),
		})
	}
	return out
}
