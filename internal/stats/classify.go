package stats

import (
	"time"

	"github.com/annoworks/annostat/models"
)

// PhaseState is the complete input to the status decision for one
// (task, phase) pair: the task-level state, the per-phase assignee, and the
// condensed history summary. Building it up front keeps Classify a pure
// function over explicit inputs.
type PhaseState struct {
	Phase        models.Phase
	CurrentPhase models.Phase
	TaskStatus   models.TaskStatus
	Assignee     string
	Rejections   int
	Summary      PhaseSummary
}

// Classify assigns exactly one status category to the phase. The rules are
// evaluated in priority order; the first match wins.
//
// Threshold suppression deliberately precedes rejection detection: a phase
// whose only work is at or below the threshold is reported as never worked
// even when a rejection flag is set, since the rejection is noise alongside
// the negligible work.
func Classify(s PhaseState, threshold time.Duration) models.StatusCategory {
	switch {
	case s.TaskStatus == models.TaskStatusOnHold && s.Phase == s.CurrentPhase:
		return models.CategoryOnHold

	case s.TaskStatus == models.TaskStatusComplete && s.Phase.Before(s.CurrentPhase):
		return models.CategoryComplete

	case s.Summary.Entries == 0 && s.Assignee == "":
		return models.CategoryNeverWorkedUnassigned

	case s.Summary.Entries == 0:
		return models.CategoryNeverWorkedAssigned

	case s.Summary.Worked <= threshold:
		if s.Assignee != "" {
			return models.CategoryNeverWorkedAssigned
		}
		return models.CategoryNeverWorkedUnassigned

	case s.rejectedBack():
		return models.CategoryWorkedRejected

	default:
		return models.CategoryWorkedNotRejected
	}
}

// rejectedBack reports whether a later phase sent the task back into this
// phase and the phase has not been re-completed since.
func (s PhaseState) rejectedBack() bool {
	if s.Summary.LastRejected {
		return true
	}
	if s.Summary.WorkedAfterRejection {
		return false
	}
	// Counter-only signal: the rejection marker is absent from the history,
	// so the phase counts as re-completed once the task has advanced past it
	// again.
	return s.Rejections > 0 && s.CurrentPhase.Before(s.Phase)
}

// StateFor assembles the PhaseState for one phase of a task from its
// normalized history.
func StateFor(task *models.Task, phase models.Phase, history NormalizedHistory) PhaseState {
	return PhaseState{
		Phase:        phase,
		CurrentPhase: task.Phase,
		TaskStatus:   task.Status,
		Assignee:     task.PhaseAssignee(phase),
		Rejections:   task.Rejections[phase],
		Summary:      history.Summarize(phase),
	}
}

// PhasesOf lists the phases a task has passed through or is currently in,
// in workflow order: every phase at or before the current one, plus any
// phase that already has history.
func PhasesOf(task *models.Task, history NormalizedHistory) []models.Phase {
	var phases []models.Phase
	for _, p := range models.AllPhases {
		if p.Before(task.Phase) || len(history[p]) > 0 {
			phases = append(phases, p)
		}
	}
	return phases
}
