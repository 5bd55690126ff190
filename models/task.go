package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PhaseHistoryEntry is one event in a task's phase history. Entries belong to
// exactly one task and are ordered chronologically, earliest first. They are
// immutable once fetched.
type PhaseHistoryEntry struct {
	Phase               Phase         `json:"phase" validate:"required,oneof=annotation inspection acceptance"`
	PhaseStage          int           `json:"phaseStage" validate:"required,min=1"`
	Assignee            string        `json:"assignee,omitempty"`
	Worked              bool          `json:"worked"`
	Worktime            time.Duration `json:"worktime" validate:"min=0"`
	RejectedByNextPhase bool          `json:"rejectedByNextPhase"`
}

// Task is one unit of annotation work, as materialized by the snapshot
// provider. The aggregation run owns it read-only for its lifetime.
type Task struct {
	TaskID              string              `json:"taskId" validate:"required"`
	Phase               Phase               `json:"phase" validate:"required,oneof=annotation inspection acceptance"`
	PhaseStage          int                 `json:"phaseStage" validate:"required,min=1"`
	Status              TaskStatus          `json:"status" validate:"required,oneof=not_started working on_hold break complete"`
	Assignee            string              `json:"assignee,omitempty"`
	Metadata            map[string]any      `json:"metadata,omitempty"`
	Histories           []PhaseHistoryEntry `json:"histories" validate:"dive"`
	Rejections          map[Phase]int       `json:"rejections,omitempty"`
	AccumulatedWorktime time.Duration       `json:"accumulatedWorktime" validate:"min=0"`
}

// PhaseAssignee returns the user assigned to the given phase: the assignee on
// the most recent history entry for that phase, falling back to the task's
// current assignee when the phase is the task's current phase.
func (t *Task) PhaseAssignee(phase Phase) string {
	for i := len(t.Histories) - 1; i >= 0; i-- {
		if t.Histories[i].Phase == phase && t.Histories[i].Assignee != "" {
			return t.Histories[i].Assignee
		}
	}
	if t.Phase == phase {
		return t.Assignee
	}
	return ""
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}
