package models

import "fmt"

// Phase represents one of the workflow stages a task passes through.
type Phase string

const (
	PhaseAnnotation Phase = "annotation"
	PhaseInspection Phase = "inspection"
	PhaseAcceptance Phase = "acceptance"
)

// AllPhases lists the phases in workflow order.
var AllPhases = []Phase{PhaseAnnotation, PhaseInspection, PhaseAcceptance}

// Order returns the 0-based position of the phase in the workflow,
// or -1 for an unknown phase.
func (p Phase) Order() int {
	switch p {
	case PhaseAnnotation:
		return 0
	case PhaseInspection:
		return 1
	case PhaseAcceptance:
		return 2
	default:
		return -1
	}
}

// Before reports whether p comes at or before other in the workflow.
func (p Phase) Before(other Phase) bool {
	return p.Order() <= other.Order()
}

// ParsePhase converts a raw phase string into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseAnnotation, PhaseInspection, PhaseAcceptance:
		return Phase(s), nil
	default:
		return "", fmt.Errorf("unknown phase %q", s)
	}
}

// TaskStatus represents the overall lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusWorking    TaskStatus = "working"
	TaskStatusOnHold     TaskStatus = "on_hold"
	TaskStatusBreak      TaskStatus = "break"
	TaskStatusComplete   TaskStatus = "complete"
)

// StatusCategory is the discrete classification assigned to one (task, phase)
// pair. The six values are mutually exclusive and exhaustive.
type StatusCategory string

const (
	CategoryNeverWorkedUnassigned StatusCategory = "never_worked.unassigned"
	CategoryNeverWorkedAssigned   StatusCategory = "never_worked.assigned"
	CategoryWorkedNotRejected     StatusCategory = "worked.not_rejected"
	CategoryWorkedRejected        StatusCategory = "worked.rejected"
	CategoryOnHold                StatusCategory = "on_hold"
	CategoryComplete              StatusCategory = "complete"
)

// AllStatusCategories lists the categories in reporting order. The slice
// order is also the index order used by count vectors.
var AllStatusCategories = []StatusCategory{
	CategoryNeverWorkedUnassigned,
	CategoryNeverWorkedAssigned,
	CategoryWorkedNotRejected,
	CategoryWorkedRejected,
	CategoryOnHold,
	CategoryComplete,
}

// Index returns the fixed position of the category in AllStatusCategories,
// or -1 for an unknown value.
func (c StatusCategory) Index() int {
	for i, v := range AllStatusCategories {
		if v == c {
			return i
		}
	}
	return -1
}
