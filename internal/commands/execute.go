package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/dayplan/internal/model"
)

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Status func(StatusArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Notify func(NotifyArgs) (Result, error)
	Goto   func(GotoArgs) (Result, error)
}

// Execute runs the handler for cmd.Type. A nil handler is a
// handler_missing error.
func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "status handler not configured"}
		}
		return handlers.Status(*cmd.Status)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeNotify:
		if handlers.Notify == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "notify handler not configured"}
		}
		return handlers.Notify(*cmd.Notify)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

// ResolveRef finds the task ref points at in the listed day. An id prefix
// must match exactly one task.
func ResolveRef(ref Ref, tasks []model.Task) (model.Task, error) {
	if ref.Index > 0 {
		if ref.Index > len(tasks) {
			return model.Task{}, invalid("no task #%d (day has %d)", ref.Index, len(tasks))
		}
		return tasks[ref.Index-1], nil
	}
	var match []model.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), ref.IDPrefix) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return model.Task{}, invalid("no task matches %q", ref.IDPrefix)
	case 1:
		return match[0], nil
	default:
		return model.Task{}, invalid("%q matches %d tasks", ref.IDPrefix, len(match))
	}
}
