package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 120

type AppData struct {
	Width       int
	Header      string
	LeftPane    string
	RightPane   string
	StatusLine  string
	StatusError bool
	Prompt      string
	Footer      string
	Overlay     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	promptStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false).Padding(0, 1)
)

// PaneWidths splits the terminal roughly 3:2 between list and preview,
// leaving room for borders and padding.
func PaneWidths(total int) (int, int) {
	if total <= 0 {
		total = defaultWidth
	}
	usable := max(total-8, 20)
	left := usable * 3 / 5
	return left, usable - left
}

func RenderApp(data AppData) string {
	lw, rw := PaneWidths(data.Width)
	body := panelStyle.Width(lw).Render(data.LeftPane)
	if data.Overlay != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(rw).Render(data.Overlay))
	} else if data.RightPane != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(rw).Render(data.RightPane))
	}

	lines := []string{headerStyle.Render(data.Header), body}
	if data.Prompt != "" {
		lines = append(lines, promptStyle.Render(data.Prompt))
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with a glamour standard style ("dark", "light").
// Rendering errors fall back to the raw markdown.
func RenderMarkdown(md, style string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
