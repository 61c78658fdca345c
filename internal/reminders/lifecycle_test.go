package reminders

import (
	"testing"
	"time"

	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingReminder(now time.Time) Reminder {
	r := Reminder{
		UserID:        uuid.New(),
		PlantID:       uuid.New(),
		Kind:          CareWatering,
		DueAt:         now.AddDate(0, 0, -2),
		Priority:      PriorityHigh,
		Status:        StatusPending,
		FrequencyDays: 7,
	}
	r.ID = uuid.New()
	return r
}

func TestSnoozeSetsDueToNowPlusOffset(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	snoozed, err := Snooze(r, DefaultConfig(), now, 6*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, StatusSnoozed, snoozed.Status)
	assert.Equal(t, now.Add(6*time.Hour), snoozed.DueAt)
	// Identity is untouched.
	assert.Equal(t, r.ID, snoozed.ID)
	assert.Equal(t, r.PlantID, snoozed.PlantID)
	assert.Equal(t, r.FrequencyDays, snoozed.FrequencyDays)
}

func TestSnoozeDefaultsToConfigOffset(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	snoozed, err := Snooze(r, DefaultConfig(), now, 0)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour), snoozed.DueAt)
}

func TestSnoozeRebucketsToUpcoming(t *testing.T) {
	// Snoozing an overdue reminder by 24h on a later calendar day moves it
	// out of overdue/today.
	now := time.Date(2025, time.June, 10, 14, 0, 0, 0, time.UTC)
	r := pendingReminder(now)

	before := Bucket([]Reminder{r}, now)
	require.Len(t, before.Overdue, 1)

	snoozed, err := Snooze(r, DefaultConfig(), now, 24*time.Hour)
	require.NoError(t, err)

	after := Bucket([]Reminder{snoozed}, now)
	assert.Empty(t, after.Overdue)
	assert.Empty(t, after.Today)
	assert.Len(t, after.Upcoming, 1)
}

func TestSnoozeIsRepeatable(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	once, err := Snooze(r, DefaultConfig(), now, 2*time.Hour)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	twice, err := Snooze(once, DefaultConfig(), later, 2*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, StatusSnoozed, twice.Status)
	assert.Equal(t, later.Add(2*time.Hour), twice.DueAt)
}

func TestCompleteIsTerminal(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	done, err := Complete(r, now)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)

	_, err = Complete(done, now)
	assert.ErrorIs(t, err, ErrCompleted)

	_, err = Snooze(done, DefaultConfig(), now, time.Hour)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestCompleteFromSnoozed(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	snoozed, err := Snooze(r, DefaultConfig(), now, time.Hour)
	require.NoError(t, err)

	done, err := Complete(snoozed, now)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)
}

func TestCompletedExcludedFromBuckets(t *testing.T) {
	now := fixedNow()
	r := pendingReminder(now)

	done, err := Complete(r, now)
	require.NoError(t, err)

	buckets := Bucket([]Reminder{done}, now)
	assert.Zero(t, buckets.Count())
}
