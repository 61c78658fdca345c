package jobs

import (
	"context"
	"time"

	"agrotrack/internal/events"
	"agrotrack/internal/logger"
	"agrotrack/internal/reminders"
	"agrotrack/internal/repositories"
	"agrotrack/internal/services"
)

// DailyDigestJob pushes each user a morning summary of their reminder
// buckets over the reminder channel.
type DailyDigestJob struct {
	reminderRepo repositories.ReminderRepository
	eventBus     *events.EventBus
	log          logger.Logger
	schedule     services.Schedule
}

func NewDailyDigestJob(
	reminderRepo repositories.ReminderRepository,
	eventBus *events.EventBus,
	schedule services.Schedule,
) *DailyDigestJob {
	log := logger.New("dailyDigestJob")
	log.Info("Creating new daily digest job", "schedule", schedule)

	return &DailyDigestJob{
		reminderRepo: reminderRepo,
		eventBus:     eventBus,
		log:          log,
		schedule:     schedule,
	}
}

func (j *DailyDigestJob) Name() string {
	return "DailyReminderDigest"
}

func (j *DailyDigestJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting daily reminder digest")

	userIDs, err := j.reminderRepo.ListUserIDsWithActive(ctx)
	if err != nil {
		return log.Err("failed to list users with active reminders", err)
	}

	now := time.Now()
	var published int
	for _, userID := range userIDs {
		active, err := j.reminderRepo.ListActiveByUser(ctx, userID)
		if err != nil {
			log.Er("failed to list reminders for digest", err, "userID", userID)
			continue
		}

		buckets := reminders.Bucket(active, now)
		if buckets.Count() == 0 {
			continue
		}

		if err := j.eventBus.PublishReminderEvent(events.REMINDER_UPDATED, userID, map[string]any{
			"digest":   true,
			"overdue":  len(buckets.Overdue),
			"today":    len(buckets.Today),
			"upcoming": len(buckets.Upcoming),
		}); err != nil {
			log.Er("failed to publish digest event", err, "userID", userID)
			continue
		}
		published++
	}

	log.Info("Daily reminder digest completed", "userCount", len(userIDs), "published", published)
	return nil
}

func (j *DailyDigestJob) Schedule() services.Schedule {
	return j.schedule
}
