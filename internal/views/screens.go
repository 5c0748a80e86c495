package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type TaskItemData struct {
	ID            string
	Title         string
	Time          string
	Priority      string
	Status        string
	Notifications bool
	Armed         bool
}

type TaskListData struct {
	Date        string
	Items       []TaskItemData
	Cursor      int
	Loading     bool
	SpinnerView string
}

type TaskDetailData struct {
	Title           string
	When            string
	Priority        string
	Status          string
	Reminder        string
	DescriptionView string
}

type CalendarData struct {
	Selected time.Time
	Today    time.Time
}

type StatsData struct {
	Completed  int
	InProgress int
	NotDone    int
	BarView    string
}

type FormData struct {
	TitleView       string
	DescriptionView string
	TimeView        string
	Priority        string
	Notifications   bool
	Focus           int
	ErrorText       string
}

type ToastData struct {
	Level string
	Text  string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

var (
	selectedDayStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	todayStyle       = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("12"))
	highStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mediumStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	doneStyle        = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	toastInfoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	toastErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// RenderCalendar draws the month of data.Selected as a Monday-first grid.
func RenderCalendar(data CalendarData) string {
	sel := data.Selected
	first := time.Date(sel.Year(), sel.Month(), 1, 0, 0, 0, 0, sel.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", first.Format("January 2006")))
	b.WriteString("Mo Tu We Th Fr Sa Su\n")
	b.WriteString(strings.Repeat("   ", offset))
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%2d", day)
		switch {
		case day == sel.Day():
			cell = selectedDayStyle.Render(cell)
		case sameDay(data.Today, time.Date(sel.Year(), sel.Month(), day, 0, 0, 0, 0, sel.Location())):
			cell = todayStyle.Render(cell)
		}
		b.WriteString(cell)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else if day < daysInMonth {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[h/l]day [H/L]week [[/]]month [t]today"))
	return strings.TrimRight(b.String(), "\n")
}

func RenderStats(data StatsData) string {
	total := data.Completed + data.InProgress + data.NotDone
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("done: %d\n", data.Completed))
	b.WriteString(fmt.Sprintf("in progress: %d\n", data.InProgress))
	b.WriteString(fmt.Sprintf("not done: %d\n", data.NotDone))
	b.WriteString(fmt.Sprintf("total: %d\n", total))
	if data.BarView != "" {
		b.WriteString(data.BarView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks for %s:\n", data.Date))
	if data.Loading {
		b.WriteString(fmt.Sprintf("%s loading...\n", data.SpinnerView))
	}
	if len(data.Items) == 0 {
		b.WriteString("  (no tasks, press [a] to add one)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		title := item.Title
		if item.Status == "done" {
			title = doneStyle.Render(title)
		}
		bell := " "
		if item.Notifications {
			bell = "*"
			if item.Armed {
				bell = "@"
			}
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s %s %s %s\n",
			cursor, i+1, statusMark(item.Status), item.Time, PriorityBadge(item.Priority), bell, title))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderTaskDetail(data TaskDetailData) string {
	if data.Title == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("\ndetail:\n")
	b.WriteString(fmt.Sprintf("%s\n", data.Title))
	b.WriteString(fmt.Sprintf("when: %s | priority: %s | status: %s\n", data.When, data.Priority, data.Status))
	if data.Reminder != "" {
		b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView)
	}
	return strings.TrimRight(b.String(), "\n")
}

var formLabels = []string{"title", "description", "time", "priority", "notifications"}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString(mutedStyle.Render("[tab]next [ctrl+p]priority [space]toggle [enter]save [esc]cancel") + "\n")
	rows := []string{
		data.TitleView,
		data.DescriptionView,
		data.TimeView,
		PriorityBadge(data.Priority),
		onOff(data.Notifications),
	}
	for i, row := range rows {
		cursor := " "
		if i == data.Focus {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, formLabels[i], row))
	}
	if data.ErrorText != "" {
		b.WriteString(failStyle.Render("error: "+data.ErrorText) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderToasts(toasts []ToastData) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := toastInfoStyle
		if t.Level == "error" {
			style = toastErrorStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("[%s] %s", strings.ToUpper(t.Level), t.Text)))
	}
	return strings.Join(lines, "\n")
}

// RenderReminderLog lists fired reminders, newest first.
func RenderReminderLog(entries []string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nrecent reminders:\n")
	for i := len(entries) - 1; i >= 0; i-- {
		b.WriteString(mutedStyle.Render("- "+entries[i]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("\ncommand: %s", inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("\nhelp:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func PriorityBadge(p string) string {
	switch p {
	case "high":
		return highStyle.Render("[HIGH]")
	case "medium":
		return mediumStyle.Render("[MED]")
	case "low":
		return lowStyle.Render("[LOW]")
	default:
		return "[" + strings.ToUpper(p) + "]"
	}
}

func statusMark(status string) string {
	switch status {
	case "done":
		return "[x]"
	case "in-progress":
		return "[~]"
	default:
		return "[ ]"
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
