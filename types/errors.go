package types

import "fmt"

// DataShapeError reports a malformed or inconsistent input record. It is
// fatal to the single task or record being processed, never to the run; the
// erroring item is reported and excluded from counts.
type DataShapeError struct {
	TaskID string
	Field  string
	Reason string
}

func (e *DataShapeError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("malformed record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record for task %s: %s: %s", e.TaskID, e.Field, e.Reason)
}

// NewDataShapeError creates a DataShapeError for one record field.
func NewDataShapeError(taskID, field, reason string) *DataShapeError {
	return &DataShapeError{TaskID: taskID, Field: field, Reason: reason}
}

// InvalidRangeError reports an unusable date/month range input. It is fatal
// to the whole run; no meaningful partial window exists.
type InvalidRangeError struct {
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: %s", e.Reason)
}

// NewInvalidRangeError creates an InvalidRangeError.
func NewInvalidRangeError(reason string) *InvalidRangeError {
	return &InvalidRangeError{Reason: reason}
}
