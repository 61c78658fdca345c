package reminderController

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubReminderRepo struct {
	reminders map[uuid.UUID]*Reminder
	saveErr   error
	saved     []Reminder
}

func newStubReminderRepo() *stubReminderRepo {
	return &stubReminderRepo{reminders: make(map[uuid.UUID]*Reminder)}
}

func (s *stubReminderRepo) GetByID(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*Reminder, error) {
	r, ok := s.reminders[id]
	if !ok || r.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (s *stubReminderRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]Reminder, error) {
	var out []Reminder
	for _, r := range s.reminders {
		if r.UserID == userID && r.Status != StatusCompleted {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubReminderRepo) Save(ctx context.Context, reminder *Reminder) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, *reminder)
	s.reminders[reminder.ID] = reminder
	return nil
}

func (s *stubReminderRepo) ReplacePending(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	generated []Reminder,
) error {
	return nil
}

func (s *stubReminderRepo) CompletePending(
	ctx context.Context,
	tx *gorm.DB,
	plantID uuid.UUID,
	kind CareKind,
	at time.Time,
) error {
	return nil
}

func (s *stubReminderRepo) ListUserIDsWithActive(ctx context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func (s *stubReminderRepo) ClearUserCache(ctx context.Context, userID uuid.UUID) {}

type stubPreferencesRepo struct {
	prefs *ReminderPreferences
}

func (s *stubPreferencesRepo) GetByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*ReminderPreferences, error) {
	if s.prefs != nil {
		return s.prefs, nil
	}
	return &ReminderPreferences{
		UserID:                 userID,
		DefaultWateringDays:    7,
		DefaultFertilizingDays: 30,
		SnoozeHours:            24,
		LookaheadDays:          2,
		UrgentMultiplier:       2,
		SeasonalAdjustment:     true,
	}, nil
}

func (s *stubPreferencesRepo) Upsert(ctx context.Context, prefs *ReminderPreferences) error {
	s.prefs = prefs
	return nil
}

func newTestController(repo *stubReminderRepo) *ReminderController {
	return &ReminderController{
		reminderRepo:    repo,
		preferencesRepo: &stubPreferencesRepo{},
		log:             logger.New("reminderControllerTest"),
	}
}

func seedReminder(repo *stubReminderRepo, user *User, status ReminderStatus) *Reminder {
	r := &Reminder{
		UserID:        user.ID,
		PlantID:       uuid.Must(uuid.NewV7()),
		Kind:          CareWatering,
		DueAt:         time.Now().Add(-48 * time.Hour),
		Priority:      PriorityHigh,
		Status:        status,
		FrequencyDays: 7,
	}
	r.ID = uuid.Must(uuid.NewV7())
	repo.reminders[r.ID] = r
	return r
}

func testUser() *User {
	u := &User{Email: "test@example.com", IsActive: true}
	u.ID = uuid.Must(uuid.NewV7())
	return u
}

func TestSnoozeMovesDueDateForward(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	user := testUser()
	seeded := seedReminder(repo, user, StatusPending)

	before := time.Now()
	result, err := controller.Snooze(context.Background(), user, seeded.ID, SnoozeRequest{})
	require.NoError(t, err)

	assert.Equal(t, StatusSnoozed, result.Status)
	assert.True(t, result.DueAt.After(before.Add(23*time.Hour)), "default snooze should push out ~24h")
	assert.Equal(t, seeded.PlantID, result.PlantID)
	assert.Len(t, repo.saved, 1)
}

func TestSnoozeHonorsHourOverride(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	user := testUser()
	seeded := seedReminder(repo, user, StatusPending)

	hours := 4
	before := time.Now()
	result, err := controller.Snooze(context.Background(), user, seeded.ID, SnoozeRequest{Hours: &hours})
	require.NoError(t, err)

	assert.WithinDuration(t, before.Add(4*time.Hour), result.DueAt, time.Minute)
}

func TestSnoozeRevertsOnPersistenceFailure(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	user := testUser()
	seeded := seedReminder(repo, user, StatusPending)

	priorDue := seeded.DueAt
	priorPriority := seeded.Priority
	repo.saveErr = errors.New("connection reset")

	_, err := controller.Snooze(context.Background(), user, seeded.ID, SnoozeRequest{})
	require.Error(t, err)

	// The stored record must look exactly as it did before the attempt.
	stored := repo.reminders[seeded.ID]
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, priorDue, stored.DueAt)
	assert.Equal(t, priorPriority, stored.Priority)
	assert.Empty(t, repo.saved)
}

func TestCompleteRevertsOnPersistenceFailure(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	user := testUser()
	seeded := seedReminder(repo, user, StatusSnoozed)

	repo.saveErr = errors.New("connection reset")

	_, err := controller.Complete(context.Background(), user, seeded.ID)
	require.Error(t, err)

	stored := repo.reminders[seeded.ID]
	assert.Equal(t, StatusSnoozed, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

func TestCompleteIsTerminal(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	user := testUser()
	seeded := seedReminder(repo, user, StatusPending)

	result, err := controller.Complete(context.Background(), user, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	require.NotNil(t, result.CompletedAt)

	_, err = controller.Complete(context.Background(), user, seeded.ID)
	assert.Error(t, err)

	_, err = controller.Snooze(context.Background(), user, seeded.ID, SnoozeRequest{})
	assert.Error(t, err)
}

func TestSnoozeScopedToOwner(t *testing.T) {
	repo := newStubReminderRepo()
	controller := newTestController(repo)
	owner := testUser()
	seeded := seedReminder(repo, owner, StatusPending)

	intruder := testUser()
	_, err := controller.Snooze(context.Background(), intruder, seeded.ID, SnoozeRequest{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
