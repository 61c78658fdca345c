package reminders

import (
	"testing"
	"time"

	. "agrotrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reminderDueAt(due time.Time) Reminder {
	return Reminder{
		Kind:          CareWatering,
		DueAt:         due,
		Status:        StatusPending,
		FrequencyDays: 7,
	}
}

func TestBucketPartition(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	items := []Reminder{
		reminderDueAt(now.AddDate(0, 0, -3)),
		reminderDueAt(now.AddDate(0, 0, -1)),
		reminderDueAt(now.Add(-2 * time.Hour)),
		reminderDueAt(now.Add(6 * time.Hour)),
		reminderDueAt(now.AddDate(0, 0, 2)),
		reminderDueAt(now.AddDate(0, 0, 14)),
	}

	buckets := Bucket(items, now)

	// Every reminder lands in exactly one bucket.
	assert.Equal(t, len(items), buckets.Count())
	assert.Len(t, buckets.Overdue, 2)
	assert.Len(t, buckets.Today, 2)
	assert.Len(t, buckets.Upcoming, 2)
}

func TestBucketMidnightBelongsToToday(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	buckets := Bucket([]Reminder{reminderDueAt(midnight)}, now)

	require.Len(t, buckets.Today, 1)
	assert.Empty(t, buckets.Overdue)
}

func TestBucketJustBeforeMidnightIsOverdue(t *testing.T) {
	now := time.Date(2025, time.June, 10, 0, 30, 0, 0, time.UTC)
	lateYesterday := time.Date(2025, time.June, 9, 23, 59, 59, 0, time.UTC)

	buckets := Bucket([]Reminder{reminderDueAt(lateYesterday)}, now)

	require.Len(t, buckets.Overdue, 1)
	assert.Empty(t, buckets.Today)
}

func TestBucketExcludesCompleted(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	done := reminderDueAt(now.AddDate(0, 0, -5))
	done.Status = StatusCompleted

	buckets := Bucket([]Reminder{done, reminderDueAt(now)}, now)

	assert.Equal(t, 1, buckets.Count())
	assert.Empty(t, buckets.Overdue)
	assert.Len(t, buckets.Today, 1)
}

func TestBucketEmptyInput(t *testing.T) {
	buckets := Bucket(nil, time.Now())
	assert.Zero(t, buckets.Count())
}
