// Package stats implements the task-status classification and counting core:
// history normalization, the six-way status decision, group-key extraction,
// and the phase/category count table.
package stats

import (
	"fmt"
	"time"

	"github.com/annoworks/annostat/models"
	"github.com/annoworks/annostat/types"
)

// NormalizedHistory holds a task's cleaned history entries grouped by phase.
// Entries keep their chronological order within each phase.
type NormalizedHistory map[models.Phase][]models.PhaseHistoryEntry

// NormalizeHistories validates a task's raw history against the project's
// phase configuration and drops noise entries that represent no actual work,
// no assignment change, and no rejection marker. It is deterministic,
// order-preserving, and side-effect free.
func NormalizeHistories(task *models.Task, cfg models.PhaseConfiguration) (NormalizedHistory, error) {
	out := make(NormalizedHistory, len(cfg.Stages))
	lastAssignee := make(map[models.Phase]string)

	for i, entry := range task.Histories {
		if !cfg.Valid(entry.Phase, entry.PhaseStage) {
			return nil, types.NewDataShapeError(task.TaskID,
				fmt.Sprintf("histories[%d]", i),
				fmt.Sprintf("phase %q stage %d not declared in phase configuration", entry.Phase, entry.PhaseStage))
		}

		keep := entry.Worked || entry.Worktime > 0 || entry.RejectedByNextPhase
		if !keep && entry.Assignee != "" && entry.Assignee != lastAssignee[entry.Phase] {
			// Pure assignment changes stay visible to the classifier.
			keep = true
		}
		if entry.Assignee != "" {
			lastAssignee[entry.Phase] = entry.Assignee
		}
		if keep {
			out[entry.Phase] = append(out[entry.Phase], entry)
		}
	}
	return out, nil
}

// PhaseSummary condenses a phase's normalized history into the facts the
// classifier looks at.
type PhaseSummary struct {
	// Entries is the number of normalized entries for the phase.
	Entries int
	// Worked is the cumulative worked time across the phase's entries.
	// Zero-duration worked entries contribute nothing here; they still
	// participate in rejection-marker evaluation.
	Worked time.Duration
	// LastRejected reports whether the phase's most recent entry carries
	// the rejected-by-next-phase marker.
	LastRejected bool
	// WorkedAfterRejection reports whether any worked entry follows the
	// last marker-carrying entry, i.e. rework has started.
	WorkedAfterRejection bool
}

// Summarize builds the per-phase summary the classifier consumes.
func (h NormalizedHistory) Summarize(phase models.Phase) PhaseSummary {
	entries := h[phase]
	sum := PhaseSummary{Entries: len(entries)}
	lastMarker := -1
	for i, e := range entries {
		if e.Worked {
			sum.Worked += e.Worktime
		}
		if e.RejectedByNextPhase {
			lastMarker = i
		}
	}
	if lastMarker >= 0 {
		sum.LastRejected = lastMarker == len(entries)-1
		for _, e := range entries[lastMarker+1:] {
			if e.Worked && e.Worktime > 0 {
				sum.WorkedAfterRejection = true
				break
			}
		}
	}
	return sum
}
