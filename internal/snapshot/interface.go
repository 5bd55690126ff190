// Package snapshot persists and replays the raw record snapshots the engine
// consumes. Collaborators fetch records from the remote platform and store
// them through an Archive; aggregation runs read them back through the
// provider interfaces.
package snapshot

import (
	"context"

	"github.com/annoworks/annostat/models"
)

// TaskProvider supplies the full task snapshot of one project.
type TaskProvider interface {
	Tasks(ctx context.Context, projectID string) ([]models.Task, error)
}

// LaborProvider supplies a project's labor entries. Implementations return
// every stored entry; window filtering belongs to the aggregator.
type LaborProvider interface {
	LaborEntries(ctx context.Context, projectID string) ([]models.LaborEntry, error)
}

// Archive is a writable snapshot store.
type Archive interface {
	TaskProvider
	LaborProvider
	SaveTasks(ctx context.Context, projectID string, tasks []models.Task) error
	SaveLaborEntries(ctx context.Context, projectID string, entries []models.LaborEntry) error
	Close() error
}
