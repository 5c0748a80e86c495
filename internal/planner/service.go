// Package planner is the only writer of the task store. It assigns ids and
// default state on creation and validates every record before it is
// persisted.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/storage"
)

var ErrValidation = errors.New("planner: validation failed")

type Service struct {
	repo  storage.Repository
	log   *zap.Logger
	newID func() string
}

type Option func(*Service)

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func NewService(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		log:   zap.NewNop(),
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Create(ctx context.Context, draft model.Draft) (model.Task, error) {
	draft, err := draft.Normalize()
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	task := model.NewTask(s.newID(), draft)
	if err := s.repo.PutTask(ctx, task); err != nil {
		s.log.Error("create task failed", zap.String("date", task.Date), zap.Error(err))
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.log.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("date", task.Date),
		zap.String("time", task.Time),
		zap.String("priority", string(task.Priority)),
	)
	return task, nil
}

// Update overwrites the whole record; an unknown id is inserted.
func (s *Service) Update(ctx context.Context, task model.Task) error {
	task, err := task.Normalize()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.repo.PutTask(ctx, task); err != nil {
		s.log.Error("update task failed", zap.String("task_id", task.ID), zap.Error(err))
		return fmt.Errorf("update task: %w", err)
	}
	s.log.Info("task updated", zap.String("task_id", task.ID), zap.String("status", string(task.Status)))
	return nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		s.log.Error("remove task failed", zap.String("task_id", id), zap.Error(err))
		return fmt.Errorf("remove task: %w", err)
	}
	s.log.Info("task removed", zap.String("task_id", id))
	return nil
}

func (s *Service) ListForDate(ctx context.Context, date string) ([]model.Task, error) {
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	date = model.FormatDate(day)
	tasks, err := s.repo.ListTasksByDate(ctx, date)
	if err != nil {
		s.log.Error("list tasks failed", zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Service) Get(ctx context.Context, id string) (model.Task, error) {
	return s.repo.GetTask(ctx, id)
}

func (s *Service) All(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	return tasks, nil
}
