package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/annoworks/annostat/models"
)

// SQLiteArchive implements Archive using SQLite for persistence.
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive opens (or creates) a SQLite-backed archive. Pass
// ":memory:" as basePath for an ephemeral archive.
func NewSQLiteArchive(basePath string) (*SQLiteArchive, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		dbPath = filepath.Join(basePath, "snapshots.db")
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	a := &SQLiteArchive{db: db}
	if err := a.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return a, nil
}

func (a *SQLiteArchive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		project_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		payload TEXT NOT NULL,
		stored_at TEXT NOT NULL,
		PRIMARY KEY (project_id, task_id)
	);

	CREATE TABLE IF NOT EXISTS labor_entries (
		project_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		planned_ms INTEGER,
		actual_ms INTEGER,
		monitored_ms INTEGER,
		PRIMARY KEY (project_id, user_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_labor_user_date ON labor_entries(user_id, date);
	`
	_, err := a.db.Exec(schema)
	return err
}

// SaveTasks replaces the stored task snapshot of one project.
func (a *SQLiteArchive) SaveTasks(ctx context.Context, projectID string, tasks []models.Task) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("clear previous snapshot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range tasks {
		payload, err := json.Marshal(&tasks[i])
		if err != nil {
			return fmt.Errorf("encode task %s: %w", tasks[i].TaskID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO tasks (project_id, task_id, payload, stored_at) VALUES (?, ?, ?, ?)",
			projectID, tasks[i].TaskID, string(payload), now)
		if err != nil {
			return fmt.Errorf("store task %s: %w", tasks[i].TaskID, err)
		}
	}
	return tx.Commit()
}

// Tasks loads the stored task snapshot of one project, ordered by task id.
func (a *SQLiteArchive) Tasks(ctx context.Context, projectID string) ([]models.Task, error) {
	rows, err := a.db.QueryContext(ctx,
		"SELECT payload FROM tasks WHERE project_id = ? ORDER BY task_id", projectID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		var task models.Task
		if err := json.Unmarshal([]byte(payload), &task); err != nil {
			return nil, fmt.Errorf("decode task payload: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// SaveLaborEntries upserts labor entries for one project. Durations are
// stored as milliseconds; a nil duration stays NULL.
func (a *SQLiteArchive) SaveLaborEntries(ctx context.Context, projectID string, entries []models.LaborEntry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt := `INSERT INTO labor_entries (project_id, user_id, date, planned_ms, actual_ms, monitored_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (project_id, user_id, date) DO UPDATE SET
			planned_ms = excluded.planned_ms,
			actual_ms = excluded.actual_ms,
			monitored_ms = excluded.monitored_ms`
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, stmt,
			projectID, e.UserID, e.Day().Format("2006-01-02"),
			durationMillis(e.Planned), durationMillis(e.Actual), durationMillis(e.Monitored))
		if err != nil {
			return fmt.Errorf("store labor entry %s/%s: %w", e.UserID, e.Day().Format("2006-01-02"), err)
		}
	}
	return tx.Commit()
}

// LaborEntries loads every stored labor entry of one project, ordered by
// user id and date.
func (a *SQLiteArchive) LaborEntries(ctx context.Context, projectID string) ([]models.LaborEntry, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT user_id, date, planned_ms, actual_ms, monitored_ms
		 FROM labor_entries WHERE project_id = ? ORDER BY user_id, date`, projectID)
	if err != nil {
		return nil, fmt.Errorf("query labor entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LaborEntry
	for rows.Next() {
		var (
			entry   models.LaborEntry
			day     string
			planned sql.NullInt64
			actual  sql.NullInt64
			watched sql.NullInt64
		)
		if err := rows.Scan(&entry.UserID, &day, &planned, &actual, &watched); err != nil {
			return nil, fmt.Errorf("scan labor row: %w", err)
		}
		date, err := time.ParseInLocation("2006-01-02", day, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("decode labor date %q: %w", day, err)
		}
		entry.ProjectID = projectID
		entry.Date = date
		entry.Planned = millisDuration(planned)
		entry.Actual = millisDuration(actual)
		entry.Monitored = millisDuration(watched)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func durationMillis(d *time.Duration) any {
	if d == nil {
		return nil
	}
	return d.Milliseconds()
}

func millisDuration(v sql.NullInt64) *time.Duration {
	if !v.Valid {
		return nil
	}
	d := time.Duration(v.Int64) * time.Millisecond
	return &d
}
