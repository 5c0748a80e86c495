// Package model holds the planner's task record and the day statistics
// derived from it.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidDate     = errors.New("model: invalid task date")
	ErrInvalidTime     = errors.New("model: invalid task time")
	ErrTitleRequired   = errors.New("model: task title is required")
)

// Status is a closed set; every switch over it lists all three values.
type Status string

const (
	StatusNotDone    Status = "not-done"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotDone, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Next cycles not-done -> in-progress -> done -> not-done.
func (s Status) Next() Status {
	switch s {
	case StatusNotDone:
		return StatusInProgress
	case StatusInProgress:
		return StatusDone
	case StatusDone:
		return StatusNotDone
	default:
		return StatusNotDone
	}
}

func (s Status) Label() string {
	switch s {
	case StatusNotDone:
		return "Not Done"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "todo", "notdone", "not_done":
		s = StatusNotDone
	case "doing", "inprogress", "in_progress", "wip":
		s = StatusInProgress
	case "complete", "completed":
		s = StatusDone
	}
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

// Draft carries every user-supplied field of a task. ID and Status are
// assigned on creation.
type Draft struct {
	Title         string
	Description   string
	Date          string
	Time          string
	Priority      Priority
	Notifications bool
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if _, err := ParseDate(d.Date); err != nil {
		return err
	}
	if _, err := ParseClock(d.Time); err != nil {
		return err
	}
	if !d.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	return nil
}

// Normalize validates d and rewrites Date and Time in their canonical
// layouts, so stored rows match and sort as plain strings.
func (d Draft) Normalize() (Draft, error) {
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	day, _ := ParseDate(d.Date)
	clock, _ := ParseClock(d.Time)
	d.Title = strings.TrimSpace(d.Title)
	d.Date = FormatDate(day)
	d.Time = clock.Format(ClockLayout)
	return d, nil
}

type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description" yaml:"description"`
	Date          string   `json:"date" yaml:"date"`
	Time          string   `json:"time" yaml:"time"`
	Priority      Priority `json:"priority" yaml:"priority"`
	Status        Status   `json:"status" yaml:"status"`
	Notifications bool     `json:"notifications" yaml:"notifications"`
}

func NewTask(id string, d Draft) Task {
	return Task{
		ID:            id,
		Title:         strings.TrimSpace(d.Title),
		Description:   d.Description,
		Date:          d.Date,
		Time:          d.Time,
		Priority:      d.Priority,
		Status:        StatusNotDone,
		Notifications: d.Notifications,
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return t.Draft().Validate()
}

// Normalize is Draft.Normalize for a stored task; ID and Status are checked
// and kept.
func (t Task) Normalize() (Task, error) {
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	d, err := t.Draft().Normalize()
	if err != nil {
		return Task{}, err
	}
	t.Title, t.Date, t.Time = d.Title, d.Date, d.Time
	return t, nil
}

func (t Task) Draft() Draft {
	return Draft{
		Title:         t.Title,
		Description:   t.Description,
		Date:          t.Date,
		Time:          t.Time,
		Priority:      t.Priority,
		Notifications: t.Notifications,
	}
}

// DueAt combines Date and Time into a single instant in loc.
func (t Task) DueAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := ParseDate(t.Date)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := ParseClock(t.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return d, nil
}

func ParseClock(raw string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	return c, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
