package repositories

import (
	"agrotrack/internal/database"
)

type Repository struct {
	User             UserRepository
	Preferences      PreferencesRepository
	Plant            PlantRepository
	CareLog          CareLogRepository
	Reminder         ReminderRepository
	AIRecommendation AIRecommendationRepository
	Forum            ForumRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:             NewUserRepository(db),
		Preferences:      NewPreferencesRepository(db),
		Plant:            NewPlantRepository(db),
		CareLog:          NewCareLogRepository(db),
		Reminder:         NewReminderRepository(db),
		AIRecommendation: NewAIRecommendationRepository(db),
		Forum:            NewForumRepository(db),
	}
}
