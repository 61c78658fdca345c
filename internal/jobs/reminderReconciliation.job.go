package jobs

import (
	"context"

	reminderController "agrotrack/internal/controllers/reminders"
	"agrotrack/internal/logger"
	"agrotrack/internal/services"
)

// ReminderReconciliationJob regenerates pending reminders for every user on a
// schedule so due dates stay correct even when nothing else touches a user's
// plants. Seasonal multipliers shift at month boundaries, which only a
// background pass picks up.
type ReminderReconciliationJob struct {
	reminders reminderController.ReminderControllerInterface
	log       logger.Logger
	schedule  services.Schedule
}

func NewReminderReconciliationJob(
	reminders reminderController.ReminderControllerInterface,
	schedule services.Schedule,
) *ReminderReconciliationJob {
	log := logger.New("reminderReconciliationJob")
	log.Info("Creating new reminder reconciliation job", "schedule", schedule)

	return &ReminderReconciliationJob{
		reminders: reminders,
		log:       log,
		schedule:  schedule,
	}
}

func (j *ReminderReconciliationJob) Name() string {
	return "ReminderReconciliation"
}

func (j *ReminderReconciliationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting reminder reconciliation")

	if err := j.reminders.RefreshAllUsers(ctx); err != nil {
		return log.Err("reminder reconciliation failed", err)
	}

	log.Info("Reminder reconciliation completed successfully")
	return nil
}

func (j *ReminderReconciliationJob) Schedule() services.Schedule {
	return j.schedule
}
