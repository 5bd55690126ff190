package stats

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/annoworks/annostat/models"
	"github.com/annoworks/annostat/types"
)

// Engine runs the classification pipeline over one task snapshot. Each run
// consumes its own snapshot and produces a fresh result, so concurrent runs
// over disjoint snapshots need no locking.
type Engine struct {
	PhaseConfig models.PhaseConfiguration
	// Threshold is the not-worked suppression threshold (default 0).
	Threshold time.Duration
	// GroupBy lists metadata field names used to bucket counts.
	GroupBy []string
	Logger  *slog.Logger
}

// NewEngine creates an engine with the given phase configuration and the
// zero threshold default.
func NewEngine(cfg models.PhaseConfiguration) *Engine {
	return &Engine{PhaseConfig: cfg, Logger: slog.Default()}
}

// Configure applies the loaded engine configuration.
func (e *Engine) Configure(cfg *types.EngineConfig) {
	e.Threshold = time.Duration(cfg.Stats.NotWorkedThresholdSeconds) * time.Second
	e.GroupBy = cfg.Stats.GroupBy
}

// SkippedTask records one task excluded from the counts, with the shape
// error that disqualified it.
type SkippedTask struct {
	TaskID string
	Err    *types.DataShapeError
}

// RunResult is the output of one aggregation run.
type RunResult struct {
	RunID   string
	Counts  *CountTable
	Skipped []SkippedTask
}

// Run classifies every task in the snapshot and tallies the results.
// Malformed tasks are reported and excluded; they never abort the run.
func (e *Engine) Run(tasks []models.Task) *RunResult {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &RunResult{
		RunID:  uuid.NewString(),
		Counts: NewCountTable(),
	}

	for i := range tasks {
		task := &tasks[i]
		if err := e.classifyTask(task, result.Counts); err != nil {
			var shapeErr *types.DataShapeError
			if !errors.As(err, &shapeErr) {
				shapeErr = types.NewDataShapeError(task.TaskID, "task", err.Error())
			}
			logger.Warn("skipping malformed task", "taskId", task.TaskID, "reason", shapeErr.Reason)
			result.Skipped = append(result.Skipped, SkippedTask{TaskID: task.TaskID, Err: shapeErr})
		}
	}
	return result
}

func (e *Engine) classifyTask(task *models.Task, table *CountTable) error {
	if task.TaskID == "" {
		return types.NewDataShapeError("", "taskId", "missing required field")
	}
	if task.Phase.Order() < 0 {
		return types.NewDataShapeError(task.TaskID, "phase", "unknown phase")
	}
	if err := models.ValidateStruct(task); err != nil {
		return types.NewDataShapeError(task.TaskID, "task", err.Error())
	}

	history, err := NormalizeHistories(task, e.PhaseConfig)
	if err != nil {
		return err
	}

	group := ExtractGroupKey(task.Metadata, e.GroupBy)
	for _, phase := range PhasesOf(task, history) {
		category := Classify(StateFor(task, phase, history), e.Threshold)
		table.Add(phase, category, group)
	}
	return nil
}
