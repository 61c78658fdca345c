// Package reminders implements the scheduling engine: due-date generation
// from care history, priority scoring, calendar bucketing, and the
// pending/snoozed/completed lifecycle. Everything here is a pure function of
// its inputs; persistence and transport live in the controllers.
package reminders

import (
	"time"

	. "agrotrack/internal/models"
)

// Config is the engine's scheduling configuration, derived from a user's
// ReminderPreferences.
type Config struct {
	// DefaultWateringDays and DefaultFertilizingDays supply the cadence for
	// plants that do not set their own. Zero disables the fallback for that
	// kind.
	DefaultWateringDays    int
	DefaultFertilizingDays int

	// LookaheadDays is the window ahead of the due date in which a reminder
	// is promoted to medium priority.
	LookaheadDays int

	// UrgentMultiplier promotes a reminder to urgent once it is overdue by
	// this multiple of its frequency.
	UrgentMultiplier float64

	// NewPlantGraceDays offsets the first due date for plants with no care
	// history. Zero means a fresh plant is immediately due.
	NewPlantGraceDays int

	// SeasonalAdjustment toggles the per-month cadence scaling.
	SeasonalAdjustment bool

	// SnoozeOffset is the default due-date push applied by a snooze.
	SnoozeOffset time.Duration
}

// DefaultConfig mirrors the ReminderPreferences column defaults.
func DefaultConfig() Config {
	return Config{
		DefaultWateringDays:    7,
		DefaultFertilizingDays: 30,
		LookaheadDays:          2,
		UrgentMultiplier:       2,
		NewPlantGraceDays:      0,
		SeasonalAdjustment:     true,
		SnoozeOffset:           24 * time.Hour,
	}
}

// ConfigFromPreferences converts stored per-user preferences into an engine
// config, falling back to defaults for unset values.
func ConfigFromPreferences(prefs *ReminderPreferences) Config {
	config := DefaultConfig()
	if prefs == nil {
		return config
	}

	if prefs.DefaultWateringDays > 0 {
		config.DefaultWateringDays = prefs.DefaultWateringDays
	}
	if prefs.DefaultFertilizingDays > 0 {
		config.DefaultFertilizingDays = prefs.DefaultFertilizingDays
	}
	if prefs.LookaheadDays > 0 {
		config.LookaheadDays = prefs.LookaheadDays
	}
	if prefs.UrgentMultiplier > 0 {
		config.UrgentMultiplier = prefs.UrgentMultiplier
	}
	if prefs.NewPlantGraceDays > 0 {
		config.NewPlantGraceDays = prefs.NewPlantGraceDays
	}
	if prefs.SnoozeHours > 0 {
		config.SnoozeOffset = time.Duration(prefs.SnoozeHours) * time.Hour
	}
	config.SeasonalAdjustment = prefs.SeasonalAdjustment

	return config
}

// seasonalMultiplier scales care cadence by month: slower in the cold months,
// faster at the height of the growing season.
var seasonalMultiplier = map[time.Month]float64{
	time.January:   1.4,
	time.February:  1.3,
	time.March:     1.1,
	time.April:     1.0,
	time.May:       0.9,
	time.June:      0.8,
	time.July:      0.8,
	time.August:    0.85,
	time.September: 1.0,
	time.October:   1.1,
	time.November:  1.2,
	time.December:  1.4,
}

// Multiplier returns the cadence scalar for the month of t, or 1 when
// seasonal adjustment is disabled.
func (c Config) Multiplier(t time.Time) float64 {
	if !c.SeasonalAdjustment {
		return 1
	}
	if m, ok := seasonalMultiplier[t.Month()]; ok {
		return m
	}
	return 1
}

// DefaultFrequency returns the user-level fallback cadence for a care kind,
// or zero when the kind has no fallback.
func (c Config) DefaultFrequency(kind CareKind) int {
	switch kind {
	case CareWatering:
		return c.DefaultWateringDays
	case CareFertilizing:
		return c.DefaultFertilizingDays
	}
	return 0
}

// Generate derives candidate reminders for one plant across all tracked care
// kinds. Kinds with no cadence on the plant fall back to the config's default
// frequency; kinds with neither are skipped. The result carries no IDs; the
// caller owns reconciliation against any persisted occurrences.
func Generate(plant *Plant, config Config, now time.Time) []Reminder {
	var out []Reminder

	for _, kind := range TrackedCareKinds {
		freq := plant.FrequencyDays(kind)
		if freq <= 0 {
			freq = config.DefaultFrequency(kind)
		}
		if freq <= 0 {
			continue
		}

		due := dueAt(plant, kind, freq, config, now)
		out = append(out, Reminder{
			UserID:        plant.UserID,
			PlantID:       plant.ID,
			Kind:          kind,
			DueAt:         due,
			Priority:      PriorityFor(due, freq, config, now),
			Status:        StatusPending,
			FrequencyDays: freq,
		})
	}

	return out
}

func dueAt(plant *Plant, kind CareKind, freq int, config Config, now time.Time) time.Time {
	last := plant.LastCaredAt(kind)
	if last == nil {
		// No care history. Anchor to acquisition (or record creation) plus
		// the configured grace period instead of unconditionally "now", so
		// freshly added plants are not born overdue.
		anchor := plant.CreatedAt
		if plant.AcquiredAt != nil {
			anchor = *plant.AcquiredAt
		}
		due := anchor.AddDate(0, 0, config.NewPlantGraceDays)
		if due.After(now) {
			return due
		}
		return now
	}

	// Multiply inside the conversion so fractional multipliers keep their
	// fractional hours instead of truncating.
	interval := time.Duration(float64(freq) * config.Multiplier(now) * 24 * float64(time.Hour))
	return last.Add(interval)
}

// PriorityFor scores a reminder by how far past due it is. The result is
// monotonic in days-overdue: urgent at or beyond UrgentMultiplier times the
// frequency, high for anything overdue, medium inside the lookahead window,
// low otherwise.
func PriorityFor(due time.Time, freq int, config Config, now time.Time) ReminderPriority {
	overdue := now.Sub(due)

	if overdue > 0 {
		urgentAt := time.Duration(float64(freq) * config.UrgentMultiplier * 24 * float64(time.Hour))
		if overdue >= urgentAt {
			return PriorityUrgent
		}
		return PriorityHigh
	}

	lookahead := time.Duration(config.LookaheadDays) * 24 * time.Hour
	if due.Sub(now) <= lookahead {
		return PriorityMedium
	}

	return PriorityLow
}
