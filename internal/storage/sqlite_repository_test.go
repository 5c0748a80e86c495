package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/dayplan/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dayplan-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db, nil)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func sampleTask(id, date, clock string, status model.Status) model.Task {
	return model.Task{
		ID:            id,
		Title:         "Task " + id,
		Description:   "",
		Date:          date,
		Time:          clock,
		Priority:      model.PriorityMedium,
		Status:        status,
		Notifications: true,
	}
}

func TestTaskPutGetAndOverwrite(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	task := sampleTask("task-1", "2024-06-01", "09:00", model.StatusNotDone)
	task.Description = "Design storage layout"
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("put task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got != task {
		t.Fatalf("unexpected task get result: %#v", got)
	}

	replaced := model.Task{
		ID:       task.ID,
		Title:    "Replaced",
		Date:     "2024-06-02",
		Time:     "18:30",
		Priority: model.PriorityLow,
		Status:   model.StatusDone,
	}
	if err := repo.PutTask(ctx, replaced); err != nil {
		t.Fatalf("overwrite task: %v", err)
	}
	got, err = repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if got != replaced {
		t.Fatalf("expected full overwrite, got %#v", got)
	}

	// idempotent
	if err := repo.PutTask(ctx, replaced); err != nil {
		t.Fatalf("second put: %v", err)
	}
	all, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 task after repeated put, got %d", len(all))
	}
}

func TestGetTaskNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.GetTask(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	task := sampleTask("task-del", "2024-06-01", "10:00", model.StatusNotDone)
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("put task: %v", err)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("second delete should be a no-op, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, "never-existed"); err != nil {
		t.Fatalf("delete of unknown id should be a no-op, got: %v", err)
	}
}

func TestListTasksByDatePartitionsAndOrders(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	seed := []model.Task{
		sampleTask("b", "2024-06-01", "14:00", model.StatusNotDone),
		sampleTask("a", "2024-06-01", "09:00", model.StatusDone),
		sampleTask("c", "2024-06-02", "08:00", model.StatusInProgress),
		sampleTask("d", "2024-06-01", "09:00", model.StatusInProgress),
	}
	for _, task := range seed {
		if err := repo.PutTask(ctx, task); err != nil {
			t.Fatalf("put %s: %v", task.ID, err)
		}
	}

	day, err := repo.ListTasksByDate(ctx, "2024-06-01")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	wantIDs := []string{"a", "d", "b"}
	if len(day) != len(wantIDs) {
		t.Fatalf("expected %d tasks, got %#v", len(wantIDs), day)
	}
	for i, id := range wantIDs {
		if day[i].ID != id {
			t.Fatalf("order[%d] got %s want %s", i, day[i].ID, id)
		}
		if day[i].Date != "2024-06-01" {
			t.Fatalf("task %s leaked from date %s", day[i].ID, day[i].Date)
		}
	}

	empty, err := repo.ListTasksByDate(ctx, "2030-01-01")
	if err != nil {
		t.Fatalf("list empty date: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %#v", empty)
	}

	all, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 || all[len(all)-1].ID != "c" {
		t.Fatalf("unexpected full listing: %#v", all)
	}
}

func TestNotificationsFlagRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	task := sampleTask("quiet", "2024-06-01", "07:15", model.StatusNotDone)
	task.Notifications = false
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.GetTask(ctx, "quiet")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Notifications {
		t.Fatal("expected notifications=false after round trip")
	}
}

func TestOpenSQLiteCreatesDirectoryAndSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "dayplan.db")

	repo, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	task := sampleTask("persist", "2024-06-01", "09:00", model.StatusNotDone)
	if err := repo.PutTask(ctx, task); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(ctx, path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetTask(ctx, "persist")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != task.Title {
		t.Fatalf("unexpected title after reopen: %q", got.Title)
	}
}

func TestOpenSQLiteUnavailable(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be opened as a database file
	_, err := OpenSQLite(context.Background(), dir, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
