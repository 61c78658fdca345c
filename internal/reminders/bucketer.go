package reminders

import (
	"time"

	. "agrotrack/internal/models"
)

// Buckets partitions reminders by the caller's local calendar day.
type Buckets struct {
	Overdue  []Reminder `json:"overdue"`
	Today    []Reminder `json:"today"`
	Upcoming []Reminder `json:"upcoming"`
}

// Bucket partitions the given reminders into overdue, today, and upcoming
// using the day boundary of now's location. A due date exactly at midnight
// belongs to that day, not to overdue. Completed reminders are excluded from
// all three buckets; every other reminder appears in exactly one.
func Bucket(items []Reminder, now time.Time) Buckets {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	var buckets Buckets
	for _, r := range items {
		if r.Status == StatusCompleted {
			continue
		}

		due := r.DueAt.In(now.Location())
		switch {
		case due.Before(startOfDay):
			buckets.Overdue = append(buckets.Overdue, r)
		case due.Before(endOfDay):
			buckets.Today = append(buckets.Today, r)
		default:
			buckets.Upcoming = append(buckets.Upcoming, r)
		}
	}

	return buckets
}

// Count returns the total number of bucketed reminders.
func (b Buckets) Count() int {
	return len(b.Overdue) + len(b.Today) + len(b.Upcoming)
}
