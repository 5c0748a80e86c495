package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
)

const taskColumns = `id, title, description, date, time, priority, status, notifications`

type SQLiteRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB, log *zap.Logger) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if log == nil {
		log = zap.NewNop()
	}
	// One connection: the store serializes its own reads and writes.
	db.SetMaxOpenConns(1)
	return &SQLiteRepository{db: sqlx.NewDb(db, "sqlite3"), log: log}, nil
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations. Any failure is reported as ErrUnavailable.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %v", ErrUnavailable, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite: %v", ErrUnavailable, err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	repo, err := NewSQLiteRepository(db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	repo.log.Debug("sqlite store opened", zap.String("path", path))
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) PutTask(ctx context.Context, in model.Task) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (:id, :title, :description, :date, :time, :priority, :status, :notifications)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			date = excluded.date,
			time = excluded.time,
			priority = excluded.priority,
			status = excluded.status,
			notifications = excluded.notifications`,
		rowFromTask(in),
	)
	if err != nil {
		return fmt.Errorf("put task %s: %w", in.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (model.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return row.toTask(), nil
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		r.log.Debug("delete of unknown task ignored", zap.String("task_id", id))
	}
	return nil
}

func (r *SQLiteRepository) ListTasksByDate(ctx context.Context, date string) ([]model.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+taskColumns+` FROM tasks
		WHERE date = ?
		ORDER BY time ASC, id ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("list tasks for %s: %w", date, err)
	}
	return rowsToTasks(rows), nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]model.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+taskColumns+` FROM tasks
		ORDER BY date ASC, time ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return rowsToTasks(rows), nil
}
