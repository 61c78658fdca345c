package reminders

import (
	"testing"
	"time"

	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	// Mid-April: seasonal multiplier is 1.0, so intervals are exact.
	return time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)
}

func testPlant(lastWatered *time.Time) *Plant {
	plant := &Plant{
		UserID:          uuid.New(),
		Name:            "Monstera",
		WateringDays:    7,
		FertilizingDays: 0,
		LastWateredAt:   lastWatered,
	}
	plant.ID = uuid.New()
	plant.CreatedAt = fixedNow().AddDate(0, 0, -1)
	return plant
}

func testConfig() Config {
	// Fallback cadences off so each test controls exactly which kinds the
	// plant schedules.
	config := DefaultConfig()
	config.DefaultWateringDays = 0
	config.DefaultFertilizingDays = 0
	return config
}

func TestGenerateDueDateFormula(t *testing.T) {
	now := fixedNow()
	last := now.AddDate(0, 0, -10)
	plant := testPlant(&last)

	result := Generate(plant, testConfig(), now)
	require.Len(t, result, 1)

	r := result[0]
	assert.Equal(t, CareWatering, r.Kind)
	assert.Equal(t, plant.ID, r.PlantID)
	assert.Equal(t, 7, r.FrequencyDays)
	// due = lastCare + frequency * multiplier (1.0 in April)
	assert.Equal(t, last.AddDate(0, 0, 7), r.DueAt)
	assert.Equal(t, StatusPending, r.Status)
}

func TestGenerateSeasonalMultiplier(t *testing.T) {
	// January stretches the watering interval by 1.4x.
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -3)
	plant := testPlant(&last)

	result := Generate(plant, testConfig(), now)
	require.Len(t, result, 1)

	freq := float64(7)
	wantInterval := time.Duration(freq * 1.4 * 24 * float64(time.Hour))
	assert.Equal(t, last.Add(wantInterval), result[0].DueAt)
}

func TestGenerateOverduePlantIsAtLeastHigh(t *testing.T) {
	// Plant last watered 10 days ago with a 7 day frequency is overdue.
	now := fixedNow()
	last := now.AddDate(0, 0, -10)
	plant := testPlant(&last)

	result := Generate(plant, testConfig(), now)
	require.Len(t, result, 1)

	r := result[0]
	assert.True(t, r.DueAt.Before(now))
	assert.GreaterOrEqual(t, r.Priority.Rank(), PriorityHigh.Rank())

	buckets := Bucket(result, now)
	assert.Len(t, buckets.Overdue, 1)
}

func TestGenerateWateredTodayIsNotDue(t *testing.T) {
	now := fixedNow()
	last := now.Add(-2 * time.Hour)
	plant := testPlant(&last)

	result := Generate(plant, testConfig(), now)
	require.Len(t, result, 1)

	buckets := Bucket(result, now)
	assert.Empty(t, buckets.Overdue)
	assert.Empty(t, buckets.Today)
	assert.Len(t, buckets.Upcoming, 1)
}

func TestGenerateNoHistoryUsesGrace(t *testing.T) {
	now := fixedNow()

	testCases := []struct {
		name      string
		graceDays int
		wantDue   time.Time
	}{
		{
			name:      "no grace means due now",
			graceDays: 0,
			wantDue:   now,
		},
		{
			name:      "grace anchors to creation plus grace",
			graceDays: 3,
			wantDue:   now.AddDate(0, 0, -1).AddDate(0, 0, 3),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plant := testPlant(nil)
			config := testConfig()
			config.NewPlantGraceDays = tc.graceDays

			result := Generate(plant, config, now)
			require.Len(t, result, 1)
			assert.Equal(t, tc.wantDue, result[0].DueAt)
		})
	}
}

func TestGenerateSkipsZeroFrequency(t *testing.T) {
	plant := testPlant(nil)
	plant.WateringDays = 0
	plant.FertilizingDays = 0

	result := Generate(plant, testConfig(), fixedNow())
	assert.Empty(t, result)
}

func TestGenerateFallsBackToPreferenceDefaults(t *testing.T) {
	// A plant with no cadence of its own schedules at the user's defaults.
	now := fixedNow()
	plant := testPlant(nil)
	plant.WateringDays = 0
	plant.CreatedAt = now.AddDate(0, 0, -30)

	config := ConfigFromPreferences(&ReminderPreferences{
		DefaultWateringDays:    5,
		DefaultFertilizingDays: 30,
		SeasonalAdjustment:     true,
	})

	result := Generate(plant, config, now)
	require.Len(t, result, 2)

	byKind := map[CareKind]Reminder{}
	for _, r := range result {
		byKind[r.Kind] = r
	}
	assert.Equal(t, 5, byKind[CareWatering].FrequencyDays)
	assert.Equal(t, 30, byKind[CareFertilizing].FrequencyDays)
}

func TestGenerateBothTrackedKinds(t *testing.T) {
	now := fixedNow()
	last := now.AddDate(0, 0, -5)
	plant := testPlant(&last)
	plant.FertilizingDays = 30
	plant.LastFertilizedAt = &last

	result := Generate(plant, testConfig(), now)
	require.Len(t, result, 2)

	kinds := []CareKind{result[0].Kind, result[1].Kind}
	assert.Contains(t, kinds, CareWatering)
	assert.Contains(t, kinds, CareFertilizing)
}

func TestPriorityMonotonicInDaysOverdue(t *testing.T) {
	now := fixedNow()
	config := DefaultConfig()
	freq := 7

	prev := -1
	// Sweep from 5 days early to 20 days overdue; rank must never decrease.
	for daysOverdue := -5; daysOverdue <= 20; daysOverdue++ {
		due := now.AddDate(0, 0, -daysOverdue)
		rank := PriorityFor(due, freq, config, now).Rank()
		assert.GreaterOrEqual(t, rank, prev, "rank regressed at %d days overdue", daysOverdue)
		prev = rank
	}
}

func TestPriorityThresholds(t *testing.T) {
	now := fixedNow()
	config := DefaultConfig()

	testCases := []struct {
		name string
		due  time.Time
		want ReminderPriority
	}{
		{"far future", now.AddDate(0, 0, 10), PriorityLow},
		{"inside lookahead", now.Add(36 * time.Hour), PriorityMedium},
		{"due this instant", now, PriorityMedium},
		{"overdue one day", now.AddDate(0, 0, -1), PriorityHigh},
		{"overdue just under urgent threshold", now.Add(-13*24*time.Hour + time.Hour), PriorityHigh},
		{"overdue twice the frequency", now.AddDate(0, 0, -14), PriorityUrgent},
		{"long overdue", now.AddDate(0, 0, -60), PriorityUrgent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PriorityFor(tc.due, 7, config, now))
		})
	}
}
