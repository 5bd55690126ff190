package worktime

import (
	"sort"
	"time"

	"github.com/annoworks/annostat/models"
)

// DailyRow is one (user, date) output row. Absent source durations surface
// as zero, never as null.
type DailyRow struct {
	UserID    string
	Date      time.Time
	Planned   time.Duration
	Actual    time.Duration
	Monitored time.Duration
}

// UserSummary sums one user's daily rows across the window.
type UserSummary struct {
	UserID    string
	Days      int
	Planned   time.Duration
	Actual    time.Duration
	Monitored time.Duration
	// ActualRate is actual/planned, zero when nothing was planned.
	ActualRate float64
	// MonitoredRate is monitored/actual, zero when nothing was worked.
	MonitoredRate float64
}

// Summary aggregates every user inside the window.
type Summary struct {
	Users     int
	Planned   time.Duration
	Actual    time.Duration
	Monitored time.Duration
}

// Result holds the three row kinds produced by one aggregation.
type Result struct {
	Daily  []DailyRow
	ByUser []UserSummary
	Total  Summary
}

type dayKey struct {
	userID string
	day    time.Time
}

// Aggregate joins labor-plan, labor-actual, and optional monitored streams by
// (user, date) inside the window. Entries for the same (user, date) from
// different source projects are summed, never overwritten. Entries outside
// the window are discarded before accumulation. An empty user set means all
// users present in the streams.
func Aggregate(window DateWindow, users []string, planned, actual, monitored []models.LaborEntry) Result {
	target := make(map[string]bool, len(users))
	for _, u := range users {
		target[u] = true
	}
	wanted := func(userID string) bool {
		return len(target) == 0 || target[userID]
	}

	acc := make(map[dayKey]*DailyRow)
	merge := func(entries []models.LaborEntry) {
		for _, e := range entries {
			if !wanted(e.UserID) || !window.Contains(e.Date) {
				continue
			}
			key := dayKey{userID: e.UserID, day: e.Day()}
			row, ok := acc[key]
			if !ok {
				row = &DailyRow{UserID: e.UserID, Date: key.day}
				acc[key] = row
			}
			if e.Planned != nil {
				row.Planned += *e.Planned
			}
			if e.Actual != nil {
				row.Actual += *e.Actual
			}
			if e.Monitored != nil {
				row.Monitored += *e.Monitored
			}
		}
	}
	merge(planned)
	merge(actual)
	merge(monitored)

	daily := make([]DailyRow, 0, len(acc))
	for _, row := range acc {
		daily = append(daily, *row)
	}
	sort.Slice(daily, func(i, j int) bool {
		if daily[i].UserID != daily[j].UserID {
			return daily[i].UserID < daily[j].UserID
		}
		return daily[i].Date.Before(daily[j].Date)
	})

	return Result{
		Daily:  daily,
		ByUser: summarizeUsers(daily),
		Total:  summarizeAll(daily),
	}
}

func summarizeUsers(daily []DailyRow) []UserSummary {
	byUser := make(map[string]*UserSummary)
	var order []string
	for _, row := range daily {
		s, ok := byUser[row.UserID]
		if !ok {
			s = &UserSummary{UserID: row.UserID}
			byUser[row.UserID] = s
			order = append(order, row.UserID)
		}
		s.Days++
		s.Planned += row.Planned
		s.Actual += row.Actual
		s.Monitored += row.Monitored
	}

	summaries := make([]UserSummary, 0, len(order))
	for _, userID := range order {
		s := byUser[userID]
		if s.Planned > 0 {
			s.ActualRate = float64(s.Actual) / float64(s.Planned)
		}
		if s.Actual > 0 {
			s.MonitoredRate = float64(s.Monitored) / float64(s.Actual)
		}
		summaries = append(summaries, *s)
	}
	return summaries
}

func summarizeAll(daily []DailyRow) Summary {
	total := Summary{}
	users := make(map[string]bool)
	for _, row := range daily {
		users[row.UserID] = true
		total.Planned += row.Planned
		total.Actual += row.Actual
		total.Monitored += row.Monitored
	}
	total.Users = len(users)
	return total
}
