package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id                  TEXT PRIMARY KEY,
	title               TEXT NOT NULL,
	due_time            TEXT NOT NULL,
	recurrence          TEXT NOT NULL DEFAULT 'daily',
	priority            TEXT NOT NULL DEFAULT 'normal',
	interval_minutes    INTEGER NOT NULL,
	max_steps           INTEGER NOT NULL,
	completed_instances TEXT NOT NULL DEFAULT '[]',
	created_at          TIMESTAMP NOT NULL,
	updated_at          TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_due_time ON tasks(due_time);
`

// SQLiteRepo persists tasks in a sqlite database. The due_time index backs
// ordered listings without a full scan.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(dataDir string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", filepath.Join(dataDir, "tasks.db"))
	if err != nil {
		return nil, fmt.Errorf("open task db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init task schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) Close() error { return r.db.Close() }

func (r *SQLiteRepo) GetAll(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, due_time, recurrence, priority,
		       interval_minutes, max_steps, completed_instances,
		       created_at, updated_at
		FROM tasks ORDER BY due_time, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) Get(ctx context.Context, id model.TaskID) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, due_time, recurrence, priority,
		       interval_minutes, max_steps, completed_instances,
		       created_at, updated_at
		FROM tasks WHERE id = ?`, string(id))
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	return t, err
}

func (r *SQLiteRepo) Upsert(ctx context.Context, t model.Task) (model.Task, error) {
	if t.ID == "" {
		t.ID = model.TaskID(uuid.NewString())
	}
	normalizeTask(&t)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	instances, err := json.Marshal(t.CompletedInstances)
	if err != nil {
		return model.Task{}, err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, due_time, recurrence, priority,
			interval_minutes, max_steps, completed_instances, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			due_time = excluded.due_time,
			recurrence = excluded.recurrence,
			priority = excluded.priority,
			interval_minutes = excluded.interval_minutes,
			max_steps = excluded.max_steps,
			completed_instances = excluded.completed_instances,
			updated_at = excluded.updated_at`,
		string(t.ID), t.Title, t.DueTime, string(t.Recurrence), string(t.Priority),
		t.Escalation.IntervalMinutes, t.Escalation.MaxSteps, string(instances),
		t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id model.TaskID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t         model.Task
		instances string
	)
	err := row.Scan(&t.ID, &t.Title, &t.DueTime, &t.Recurrence, &t.Priority,
		&t.Escalation.IntervalMinutes, &t.Escalation.MaxSteps, &instances,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Task{}, err
	}
	if err := json.Unmarshal([]byte(instances), &t.CompletedInstances); err != nil {
		return model.Task{}, fmt.Errorf("task %s: bad completed_instances: %w", t.ID, err)
	}
	normalizeTask(&t)
	return t, nil
}
