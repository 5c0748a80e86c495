package views

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCalendarLaysOutMonth(t *testing.T) {
	sel := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	out := RenderCalendar(CalendarData{Selected: sel, Today: sel})
	if !strings.Contains(out, "June 2024") {
		t.Fatalf("missing month header: %q", out)
	}
	lines := strings.Split(out, "\n")
	// June 1st 2024 is a Saturday: five empty Monday-first cells precede it.
	if !strings.HasPrefix(lines[2], strings.Repeat("   ", 5)+" 1  2") {
		t.Fatalf("unexpected first week: %q", lines[2])
	}
	if !strings.Contains(out, "30") || strings.Contains(out, "31") {
		t.Fatalf("june should end on the 30th: %q", out)
	}
}

func TestRenderTaskList(t *testing.T) {
	out := RenderTaskList(TaskListData{
		Date: "2024-06-01",
		Items: []TaskItemData{
			{ID: "a", Title: "Pay bills", Time: "09:00", Priority: "high", Status: "not-done", Notifications: true, Armed: true},
			{ID: "b", Title: "Stretch", Time: "18:30", Priority: "low", Status: "in-progress"},
		},
		Cursor: 1,
	})
	if !strings.Contains(out, "tasks for 2024-06-01") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "1. [ ] 09:00") || !strings.Contains(out, "Pay bills") {
		t.Fatalf("missing first task: %q", out)
	}
	if !strings.Contains(out, "> 2. [~] 18:30") {
		t.Fatalf("cursor not on second task: %q", out)
	}
	if !strings.Contains(out, "[HIGH]") || !strings.Contains(out, "[LOW]") {
		t.Fatalf("missing priority badges: %q", out)
	}
}

func TestRenderTaskListEmpty(t *testing.T) {
	out := RenderTaskList(TaskListData{Date: "2024-06-02"})
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("expected empty hint: %q", out)
	}
}

func TestRenderStats(t *testing.T) {
	out := RenderStats(StatsData{Completed: 1, InProgress: 2, NotDone: 3, BarView: "bar"})
	for _, want := range []string{"done: 1", "in progress: 2", "not done: 3", "total: 6", "bar"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestRenderToastsAndForm(t *testing.T) {
	out := RenderToasts([]ToastData{{Level: "info", Text: "Task added successfully!"}, {Level: "error", Text: "boom"}})
	if !strings.Contains(out, "[INFO] Task added successfully!") || !strings.Contains(out, "[ERROR] boom") {
		t.Fatalf("unexpected toasts: %q", out)
	}
	if RenderToasts(nil) != "" {
		t.Fatal("expected no output without toasts")
	}

	form := RenderForm(FormData{TitleView: "Pay bills", Priority: "medium", Notifications: true, Focus: 3, ErrorText: "time is required"})
	if !strings.Contains(form, "> priority: [MED]") || !strings.Contains(form, "notifications: on") {
		t.Fatalf("unexpected form: %q", form)
	}
	if !strings.Contains(form, "time is required") {
		t.Fatalf("missing form error: %q", form)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("expected empty output for blank markdown")
	}
	if out := RenderMarkdown("**bold** text", 40); !strings.Contains(out, "bold") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}

func TestRenderAppStacksPanesWhenNarrow(t *testing.T) {
	data := AppData{
		Header:       "dayplan",
		LeftPane:     "CALENDAR",
		RightPane:    "TASKS",
		StatusLine:   "status: ok",
		Notification: "[INFO] saved",
		Footer:       "keys",
	}

	wide := RenderApp(data)
	if !sameLine(wide, "CALENDAR", "TASKS") {
		t.Fatalf("expected panes side by side:\n%s", wide)
	}

	data.Width = 60
	narrow := RenderApp(data)
	if sameLine(narrow, "CALENDAR", "TASKS") {
		t.Fatalf("expected stacked panes:\n%s", narrow)
	}
	for _, want := range []string{"dayplan", "[INFO] saved", "status: ok", "keys"} {
		if !strings.Contains(narrow, want) {
			t.Fatalf("missing %q:\n%s", want, narrow)
		}
	}
}

func sameLine(out, a, b string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, a) && strings.Contains(line, b) {
			return true
		}
	}
	return false
}

func TestRenderReminderLogNewestFirst(t *testing.T) {
	if RenderReminderLog(nil) != "" {
		t.Fatal("expected no output without reminders")
	}
	out := RenderReminderLog([]string{"08:00 Stretch", "09:00 Pay bills"})
	first := strings.Index(out, "09:00 Pay bills")
	second := strings.Index(out, "08:00 Stretch")
	if !strings.Contains(out, "recent reminders:") || first < 0 || second < 0 || first > second {
		t.Fatalf("unexpected reminder log: %q", out)
	}
}
