package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

type HeaderData struct {
	Filter  string
	Sort    string
	Search  string
	CanUndo bool
}

type TaskRowData struct {
	ID        string
	Text      string
	Priority  string
	Completed bool
	Overdue   bool
	Due       string
	Touched   string
}

type TaskListData struct {
	Rows       []TaskRowData
	Cursor     int
	SelectedID string
	Filter     string
	// Empty is true when the store holds no tasks at all.
	Empty bool
}

type OverviewData struct {
	Total     int
	Completed int
	Active    int
	Overdue   int
	BarWidth  int
}

type HistoryLine struct {
	Type string
	When string
}

type PreviewData struct {
	Text      string
	Priority  string
	Due       string
	Created   string
	Completed bool
	Overdue   bool
	History   []HistoryLine
}

var (
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	timeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func RenderHeader(data HeaderData) string {
	parts := []string{
		"todolist",
		"filter: " + data.Filter,
		"sort: " + data.Sort,
	}
	if data.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", data.Search))
	}
	if data.CanUndo {
		parts = append(parts, "[u]ndo")
	}
	return strings.Join(parts, " | ")
}

// ListSummary is the line above the list: a count, or why it is empty.
func ListSummary(visible int, filter string) string {
	if visible == 0 {
		if filter == "" || filter == "all" {
			return "No tasks yet"
		}
		return fmt.Sprintf("No %s tasks", filter)
	}
	if visible == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", visible)
}

func PriorityBadge(priority string) string {
	label := "[" + strings.ToUpper(priority[:min(1, len(priority))]) + "]"
	if st, ok := priorityStyles[priority]; ok {
		return st.Render(label)
	}
	return label
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(ListSummary(len(data.Rows), data.Filter))
	if data.Empty {
		b.WriteString("\npress [a] to add one")
	}
	if len(data.Rows) == 0 {
		return b.String()
	}
	b.WriteString("\n")
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = cursorStyle.Render(">")
		}
		mark := "[ ]"
		if row.Completed {
			mark = "[x]"
		}
		sel := " "
		if row.ID == data.SelectedID {
			sel = "*"
		}
		text := row.Text
		switch {
		case row.Completed:
			text = doneStyle.Render(text)
		case row.Overdue:
			text = overdueStyle.Render(text + " (overdue)")
		}
		line := fmt.Sprintf("%s%s%2d %s %s %s", cursor, sel, i+1, mark, PriorityBadge(row.Priority), text)
		if row.Due != "" {
			line += " due:" + row.Due
		}
		if row.Touched != "" {
			line += "  " + timeStyle.Render(row.Touched)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderProgress draws completed/total as a bar followed by the counts.
func RenderProgress(completed, total, width int) string {
	if width <= 0 {
		width = 30
	}
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total)
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(width), progress.WithoutPercentage())
	return fmt.Sprintf("%s %d / %d", bar.ViewAs(pct), completed, total)
}

func RenderOverview(data OverviewData) string {
	return fmt.Sprintf("overview:\n%s\ntotal: %d  active: %d  completed: %d  overdue: %d",
		RenderProgress(data.Completed, data.Total, data.BarWidth),
		data.Total, data.Active, data.Completed, data.Overdue,
	)
}

// PreviewMarkdown lays out the selected task for RenderMarkdown. History is
// listed newest first.
func PreviewMarkdown(data PreviewData) string {
	var b strings.Builder
	title := data.Text
	if data.Overdue {
		title += " (overdue)"
	}
	fmt.Fprintf(&b, "## %s\n\n", title)
	status := "active"
	if data.Completed {
		status = "completed"
	}
	due := data.Due
	if due == "" {
		due = "No date"
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	fmt.Fprintf(&b, "- **Priority:** %s\n", data.Priority)
	fmt.Fprintf(&b, "- **Due:** %s\n", due)
	fmt.Fprintf(&b, "- **Created:** %s\n\n", data.Created)
	b.WriteString("### Activity\n\n")
	if len(data.History) == 0 {
		b.WriteString("_no activity_\n")
	}
	for i := len(data.History) - 1; i >= 0; i-- {
		h := data.History[i]
		fmt.Fprintf(&b, "- **%s** %s\n", h.Type, h.When)
	}
	return b.String()
}

func RenderPreviewPane(data *PreviewData, style string, width int) string {
	if data == nil {
		return "preview:\n(press enter on a task)"
	}
	return RenderMarkdown(PreviewMarkdown(*data), style, width)
}

func RenderCommandPalette(input string, suggestions []string) string {
	out := "command: " + input
	if len(suggestions) > 0 {
		out += "\n" + timeStyle.Render(strings.Join(suggestions, "  "))
	}
	return out
}

func RenderHelpPanel(helpView string) string {
	return "help:\n" + helpView
}
