// Package views renders controller state into terminal text.
package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	calendarPaneWidth = 34
	tasksPaneWidth    = 62
	// side by side needs both panes plus their borders and padding
	splitMinWidth = calendarPaneWidth + tasksPaneWidth + 8
)

// AppData is one frame of the planner screen. Width is the terminal width;
// zero means unknown and keeps the side-by-side layout.
type AppData struct {
	Width        int
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	titleBarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	toastBoxStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	var body string
	if data.Width > 0 && data.Width < splitMinWidth {
		w := data.Width - 4
		body = lipgloss.JoinVertical(lipgloss.Left,
			paneStyle.Width(w).Render(data.LeftPane),
			paneStyle.Width(w).Render(data.RightPane),
		)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			paneStyle.Width(calendarPaneWidth).Render(data.LeftPane),
			paneStyle.Width(tasksPaneWidth).Render(data.RightPane),
		)
	}

	sections := []string{titleBarStyle.Render(data.Header), body}
	if data.Notification != "" {
		sections = append(sections, toastBoxStyle.Render(data.Notification))
	}
	if data.StatusLine != "" {
		if data.StatusError {
			sections = append(sections, failStyle.Render(data.StatusLine))
		} else {
			sections = append(sections, okStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		sections = append(sections, mutedStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// RenderMarkdown renders a task description, falling back to the raw text
// when glamour fails.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width <= 0 {
		width = tasksPaneWidth - 6
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
