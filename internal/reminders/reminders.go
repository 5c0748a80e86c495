// Package reminders keeps at most one pending reminder per task, arming and
// cancelling them as the loaded task set changes.
package reminders

import (
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/scheduler"
)

// Armer is satisfied by *scheduler.Engine.
type Armer interface {
	Schedule(scheduler.ReminderEvent) error
	Cancel(key string) bool
	Pending(key string) (scheduler.ReminderEvent, bool)
}

// Armed describes one pending reminder.
type Armed struct {
	TaskID string
	Title  string
	Date   string
	At     time.Time
}

type Scheduler struct {
	mu     sync.Mutex
	engine Armer
	loc    *time.Location
	now    func() time.Time
	log    *zap.Logger
	armed  map[string]Armed
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

func New(engine Armer, opts ...Option) *Scheduler {
	s := &Scheduler{
		engine: engine,
		loc:    time.Local,
		now:    time.Now,
		log:    zap.NewNop(),
		armed:  make(map[string]Armed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Eligible reports whether task should have a pending reminder at now.
func Eligible(task model.Task, now time.Time, loc *time.Location) bool {
	if !task.Notifications {
		return false
	}
	switch task.Status {
	case model.StatusDone:
		return false
	case model.StatusNotDone, model.StatusInProgress:
	default:
		return false
	}
	due, err := task.DueAt(loc)
	if err != nil {
		return false
	}
	return due.After(now)
}

// Sync reconciles pending reminders with the task set loaded for date.
// Reminders armed for other dates are left alone.
func (s *Scheduler) Sync(date string, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	now := s.now()
	seen := make(map[string]bool, len(tasks))
	var errs []error
	for _, task := range tasks {
		seen[task.ID] = true
		if !Eligible(task, now, s.loc) {
			s.cancelLocked(task.ID, "ineligible")
			continue
		}
		if err := s.armLocked(task); err != nil {
			errs = append(errs, err)
		}
	}

	for id, a := range s.armed {
		if a.Date == date && !seen[id] {
			s.cancelLocked(id, "gone")
		}
	}
	return errors.Join(errs...)
}

// Forget cancels the reminder for a deleted task.
func (s *Scheduler) Forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id, "forgotten")
}

// Fired drops the bookkeeping for a reminder the engine has delivered.
func (s *Scheduler) Fired(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.armed, id)
}

func (s *Scheduler) Pending(id string) (Armed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	a, ok := s.armed[id]
	return a, ok
}

// Armed lists pending reminders ordered by trigger time.
func (s *Scheduler) Armed() []Armed {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	out := make([]Armed, 0, len(s.armed))
	for _, a := range s.armed {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].TaskID < out[j].TaskID
		}
		return out[i].At.Before(out[j].At)
	})
	return out
}

func (s *Scheduler) armLocked(task model.Task) error {
	due, err := task.DueAt(s.loc)
	if err != nil {
		return err
	}
	if prev, ok := s.armed[task.ID]; ok && prev.At.Equal(due) && prev.Title == task.Title {
		return nil
	}
	if err := s.engine.Schedule(scheduler.ReminderEvent{TaskID: task.ID, Title: task.Title, TriggerAt: due}); err != nil {
		s.log.Warn("arm reminder failed", zap.String("task_id", task.ID), zap.Error(err))
		return err
	}
	s.armed[task.ID] = Armed{TaskID: task.ID, Title: task.Title, Date: task.Date, At: due}
	s.log.Debug("reminder armed", zap.String("task_id", task.ID), zap.Time("at", due))
	return nil
}

// pruneLocked drops entries the engine no longer holds: events it fired or
// dropped before Fired was called.
func (s *Scheduler) pruneLocked() {
	for id := range s.armed {
		if _, ok := s.engine.Pending(id); !ok {
			delete(s.armed, id)
			s.log.Debug("reminder left the engine", zap.String("task_id", id))
		}
	}
}

func (s *Scheduler) cancelLocked(id, reason string) {
	if _, ok := s.armed[id]; !ok {
		return
	}
	s.engine.Cancel(id)
	delete(s.armed, id)
	s.log.Debug("reminder cancelled", zap.String("task_id", id), zap.String("reason", reason))
}
