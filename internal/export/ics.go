package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

const (
	icsStampLayout = "20060102T150405Z"
	eventLength    = 30 * time.Minute
)

// WriteICS emits one VEVENT per task. Tasks whose date or time cannot be
// parsed are skipped.
func WriteICS(w io.Writer, tasks []model.Task, opts Options) error {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//dayplan//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	for _, t := range tasks {
		ev, err := eventLines(t, loc, now)
		if err != nil {
			continue
		}
		lines = append(lines, ev...)
	}
	lines = append(lines, "END:VCALENDAR", "")

	if _, err := io.WriteString(w, strings.Join(lines, "\r\n")); err != nil {
		return fmt.Errorf("export: write ics: %w", err)
	}
	return nil
}

func eventLines(t model.Task, loc *time.Location, now time.Time) ([]string, error) {
	start, err := t.DueAt(loc)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(t.Title)

	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + escapeICSText("task-"+t.ID+"@dayplan"),
		"DTSTAMP:" + now.UTC().Format(icsStampLayout),
		"DTSTART:" + start.UTC().Format(icsStampLayout),
		"DTEND:" + start.Add(eventLength).UTC().Format(icsStampLayout),
		"SUMMARY:" + escapeICSText(title),
		"STATUS:" + icsStatus(t.Status),
		fmt.Sprintf("PRIORITY:%d", icsPriority(t.Priority)),
		"X-DAYPLAN-STATUS:" + string(t.Status),
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
	}
	if t.Notifications {
		lines = append(lines,
			"BEGIN:VALARM",
			"ACTION:DISPLAY",
			"DESCRIPTION:"+escapeICSText("Task Reminder: "+title),
			"TRIGGER:PT0M",
			"END:VALARM",
		)
	}
	lines = append(lines, "END:VEVENT")
	return lines, nil
}

// VEVENT has no completed state; the exact status is kept in X-DAYPLAN-STATUS.
func icsStatus(s model.Status) string {
	switch s {
	case model.StatusNotDone:
		return "TENTATIVE"
	case model.StatusInProgress, model.StatusDone:
		return "CONFIRMED"
	default:
		return "TENTATIVE"
	}
}

func icsPriority(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return 1
	case model.PriorityMedium:
		return 5
	case model.PriorityLow:
		return 9
	default:
		return 0
	}
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
