// Package storage persists tasks in SQLite.
package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/dayplan/internal/model"
)

var (
	ErrNotFound    = errors.New("storage: not found")
	ErrUnavailable = errors.New("storage: unavailable")
)

// Repository is the task collection. PutTask is insert-or-replace and
// DeleteTask of a missing id is not an error.
type Repository interface {
	PutTask(ctx context.Context, in model.Task) error
	GetTask(ctx context.Context, id string) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasksByDate(ctx context.Context, date string) ([]model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
}
