// Package worktime implements the labor reporting side of the engine: the
// date-window resolver and the per-user worktime aggregator.
package worktime

import (
	"fmt"
	"time"

	"github.com/annoworks/annostat/types"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// DateWindow is a canonical inclusive date interval, both bounds normalized
// to UTC midnight. Construct it only through ResolveWindow.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given time falls on a day inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days lists every calendar day of the window in order.
func (w DateWindow) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// RangeInput carries the user-supplied range: either both dates or both
// months, never a mixture, never neither.
type RangeInput struct {
	StartDate  string
	EndDate    string
	StartMonth string
	EndMonth   string
}

// InputFromConfig builds the range input from the loaded labor
// configuration.
func InputFromConfig(cfg types.LaborConfig) RangeInput {
	return RangeInput{
		StartDate:  cfg.StartDate,
		EndDate:    cfg.EndDate,
		StartMonth: cfg.StartMonth,
		EndMonth:   cfg.EndMonth,
	}
}

// ResolveWindow normalizes a range input into a DateWindow. Month inputs
// expand to the first and last calendar day of the given months. It returns
// an InvalidRangeError when day-level and month-level inputs are mixed, when
// neither pair is supplied, when a pair is incomplete, or when the resolved
// start falls after the end.
func ResolveWindow(in RangeInput) (DateWindow, error) {
	hasDates := in.StartDate != "" || in.EndDate != ""
	hasMonths := in.StartMonth != "" || in.EndMonth != ""

	switch {
	case hasDates && hasMonths:
		return DateWindow{}, types.NewInvalidRangeError("date and month ranges are mutually exclusive")
	case !hasDates && !hasMonths:
		return DateWindow{}, types.NewInvalidRangeError("either a date range or a month range is required")
	}

	var start, end time.Time
	var err error
	if hasDates {
		if in.StartDate == "" || in.EndDate == "" {
			return DateWindow{}, types.NewInvalidRangeError("both start and end dates are required")
		}
		if start, err = parseDay(in.StartDate); err != nil {
			return DateWindow{}, err
		}
		if end, err = parseDay(in.EndDate); err != nil {
			return DateWindow{}, err
		}
	} else {
		if in.StartMonth == "" || in.EndMonth == "" {
			return DateWindow{}, types.NewInvalidRangeError("both start and end months are required")
		}
		if start, err = parseMonth(in.StartMonth); err != nil {
			return DateWindow{}, err
		}
		if end, err = parseMonth(in.EndMonth); err != nil {
			return DateWindow{}, err
		}
		// Last day of the end month.
		end = end.AddDate(0, 1, -1)
	}

	if start.After(end) {
		return DateWindow{}, types.NewInvalidRangeError(
			fmt.Sprintf("start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout)))
	}
	return DateWindow{Start: start, End: end}, nil
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, types.NewInvalidRangeError(fmt.Sprintf("cannot parse date %q, want YYYY-MM-DD", s))
	}
	return t, nil
}

func parseMonth(s string) (time.Time, error) {
	t, err := time.ParseInLocation(monthLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, types.NewInvalidRangeError(fmt.Sprintf("cannot parse month %q, want YYYY-MM", s))
	}
	return t, nil
}
