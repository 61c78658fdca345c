package reminders

import (
	"errors"
	"time"

	. "agrotrack/internal/models"
)

// ErrCompleted is returned when a terminal reminder is asked to transition.
var ErrCompleted = errors.New("reminder occurrence already completed")

// Snooze returns a copy of the reminder pushed out to now plus offset. The
// reminder keeps its plant association and frequency; priority is rescored
// against the new due date. Snoozing is repeatable. Completing an occurrence
// is allowed from either pending or snoozed, so only completed is rejected.
func Snooze(r Reminder, config Config, now time.Time, offset time.Duration) (Reminder, error) {
	if r.Terminal() {
		return r, ErrCompleted
	}

	if offset <= 0 {
		offset = config.SnoozeOffset
	}

	r.Status = StatusSnoozed
	r.DueAt = now.Add(offset)
	r.Priority = PriorityFor(r.DueAt, r.FrequencyDays, config, now)
	return r, nil
}

// Complete returns a copy of the reminder marked completed at now. The
// occurrence is terminal; the generator produces the next one from the care
// log that triggered completion.
func Complete(r Reminder, now time.Time) (Reminder, error) {
	if r.Terminal() {
		return r, ErrCompleted
	}

	r.Status = StatusCompleted
	r.CompletedAt = &now
	return r, nil
}
