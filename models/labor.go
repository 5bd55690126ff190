package models

import "time"

// LaborEntry is a single user/date record of planned, actual, or monitored
// work duration, as delivered by the labor snapshot provider. A nil duration
// means the source carried no value for that column. Entries for the same
// (user, date) arriving from different source projects must be summed by the
// consumer, never overwritten.
type LaborEntry struct {
	UserID    string         `json:"userId" validate:"required"`
	ProjectID string         `json:"projectId,omitempty"`
	Date      time.Time      `json:"date" validate:"required"`
	Planned   *time.Duration `json:"planned,omitempty"`
	Actual    *time.Duration `json:"actual,omitempty"`
	Monitored *time.Duration `json:"monitored,omitempty"`
}

// Day normalizes the entry's date to UTC midnight so entries from sources
// with differing time components join on the calendar day.
func (e LaborEntry) Day() time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
}
