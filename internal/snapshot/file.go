package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/annoworks/annostat/models"
)

// FileArchive implements Archive with one JSON document per project and
// record kind. The filesystem is pluggable so tests can run on an in-memory
// fs; file-level locking is taken only on the real OS filesystem.
type FileArchive struct {
	fs  afero.Fs
	dir string
	flk *flock.Flock
}

// NewFileArchive creates a file archive rooted at dir.
func NewFileArchive(fs afero.Fs, dir string) (*FileArchive, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	a := &FileArchive{fs: fs, dir: dir}
	if _, ok := fs.(*afero.OsFs); ok {
		a.flk = flock.New(filepath.Join(dir, ".lock"))
	}
	return a, nil
}

func (a *FileArchive) path(kind, projectID string) string {
	return filepath.Join(a.dir, fmt.Sprintf("%s_%s.json", kind, projectID))
}

func (a *FileArchive) write(path string, v any) error {
	if a.flk != nil {
		if err := a.flk.Lock(); err != nil {
			return fmt.Errorf("acquire archive lock: %w", err)
		}
		defer func() { _ = a.flk.Unlock() }()
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := afero.WriteFile(a.fs, path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (a *FileArchive) read(path string, v any) (bool, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	return true, nil
}

// SaveTasks replaces the stored task snapshot of one project.
func (a *FileArchive) SaveTasks(_ context.Context, projectID string, tasks []models.Task) error {
	return a.write(a.path("tasks", projectID), tasks)
}

// Tasks loads the stored task snapshot of one project. A project never
// stored yields an empty snapshot.
func (a *FileArchive) Tasks(_ context.Context, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if _, err := a.read(a.path("tasks", projectID), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveLaborEntries replaces the stored labor snapshot of one project.
func (a *FileArchive) SaveLaborEntries(_ context.Context, projectID string, entries []models.LaborEntry) error {
	return a.write(a.path("labor", projectID), entries)
}

// LaborEntries loads the stored labor snapshot of one project.
func (a *FileArchive) LaborEntries(_ context.Context, projectID string) ([]models.LaborEntry, error) {
	var entries []models.LaborEntry
	if _, err := a.read(a.path("labor", projectID), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Close is a no-op for file archives.
func (a *FileArchive) Close() error {
	return nil
}
