// Package commands parses command palette input and dispatches it to
// caller-supplied handlers.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeStatus Type = "status"
	TypeDelete Type = "delete"
	TypeNotify Type = "notify"
	TypeGoto   Type = "goto"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs leaves Time empty when the command did not name one.
type AddArgs struct {
	Title    string
	Time     string
	Priority model.Priority
}

// Ref is a 1-based position in the day list or an id prefix.
type Ref struct {
	Index    int
	IDPrefix string
}

func (r Ref) String() string {
	if r.Index > 0 {
		return strconv.Itoa(r.Index)
	}
	return r.IDPrefix
}

type StatusArgs struct {
	Target Ref
	Status model.Status
}

type DeleteArgs struct {
	Target Ref
}

type NotifyArgs struct {
	Target Ref
	On     bool
}

// GotoArgs holds either an absolute date or a day offset from today.
type GotoArgs struct {
	Date   string
	Offset int
}

// Resolve returns the target date given today's date.
func (g GotoArgs) Resolve(today time.Time) time.Time {
	if g.Date != "" {
		if d, err := model.ParseDate(g.Date); err == nil {
			return d
		}
	}
	y, m, d := today.Date()
	return time.Date(y, m, d+g.Offset, 0, 0, 0, 0, today.Location())
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Status *StatusArgs
	Delete *DeleteArgs
	Notify *NotifyArgs
	Goto   *GotoArgs
}

// Parse reads one palette line; the leading "/" is optional.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStatus:
		return parseStatus(input, args)
	case TypeDelete, "rm":
		return parseDelete(input, args)
	case TypeNotify:
		return parseNotify(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts an optional HH:MM and an optional priority, in either
// order, before the title.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{Priority: model.PriorityMedium}
	seenTime, seenPriority := false, false
	for len(args) > 0 {
		tok := args[0]
		if !seenTime {
			if _, err := model.ParseClock(tok); err == nil {
				out.Time = tok
				seenTime = true
				args = args[1:]
				continue
			}
		}
		if !seenPriority {
			if p, err := model.ParsePriority(tok); err == nil {
				out.Priority = p
				seenPriority = true
				args = args[1:]
				continue
			}
		}
		break
	}
	out.Title = strings.TrimSpace(strings.Join(args, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("status requires a task and a status")
	}
	ref, err := parseRef(args[0])
	if err != nil {
		return Command{}, err
	}
	st, err := model.ParseStatus(strings.Join(args[1:], "-"))
	if err != nil {
		return Command{}, invalid("unknown status %q", strings.Join(args[1:], " "))
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Target: ref, Status: st}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("delete requires exactly one task")
	}
	ref, err := parseRef(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: ref}}, nil
}

func parseNotify(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("notify requires a task and on|off")
	}
	ref, err := parseRef(args[0])
	if err != nil {
		return Command{}, err
	}
	var on bool
	switch strings.ToLower(args[1]) {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
		on = false
	default:
		return Command{}, invalid("notify expects on or off, got %q", args[1])
	}
	return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Target: ref, On: on}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires a date")
	}
	var g GotoArgs
	switch strings.ToLower(args[0]) {
	case "today":
	case "tomorrow":
		g.Offset = 1
	case "yesterday":
		g.Offset = -1
	default:
		d, err := model.ParseDate(args[0])
		if err != nil {
			return Command{}, invalid("goto expects yyyy-mm-dd, today, tomorrow or yesterday")
		}
		g.Date = model.FormatDate(d)
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &g}, nil
}

func parseRef(tok string) (Ref, error) {
	tok = strings.TrimSpace(strings.TrimPrefix(tok, "#"))
	if tok == "" {
		return Ref{}, invalid("task reference is empty")
	}
	if n, err := strconv.Atoi(tok); err == nil {
		if n < 1 {
			return Ref{}, invalid("task index must be 1 or greater")
		}
		return Ref{Index: n}, nil
	}
	return Ref{IDPrefix: strings.ToLower(tok)}, nil
}
