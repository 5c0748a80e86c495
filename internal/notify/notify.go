// Package notify is the boundary to the desktop notification service and
// the in-app toast fallback.
package notify

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const (
	LevelInfo  = "info"
	LevelError = "error"
)

var ErrUnsupportedPlatform = errors.New("notify: desktop notifications are not supported on this platform")

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Reminder builds the notification emitted when a task comes due.
func Reminder(title string, at time.Time) Notification {
	return Notification{
		Title: "Task Reminder: " + title,
		Body:  fmt.Sprintf("Your task %q is due now!", title),
		Level: LevelInfo,
		At:    at,
	}
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	helper, ok := HelperFor(runtime.GOOS)
	if !ok {
		return ErrUnsupportedPlatform
	}
	return exec.Command(helper, helperArgs(helper, n)...).Run()
}

func helperArgs(helper string, n Notification) []string {
	if helper == "osascript" {
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return []string{"-e", script}
	}
	return []string{n.Title, n.Body}
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
