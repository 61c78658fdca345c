package seed

import (
	"time"

	"agrotrack/config"
	"agrotrack/internal/logger"

	. "agrotrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

// Seed loads development data: an admin, a regular user, and a few plants
// with care history so reminders have something to chew on.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			FirstName:    "Admin",
			LastName:     "User",
			DisplayName:  "Administrator",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			IsAdmin:      true,
			IsActive:     true,
		},
		{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        "ada.lovelace@example.com",
			PasswordHash: string(hash),
			IsActive:     true,
		},
	}

	for i := range users {
		var existing User
		if err := db.First(&existing, "email = ?", users[i].Email).Error; err == nil {
			users[i] = existing
			log.Info("User already exists", "email", existing.Email)
			continue
		}
		if err := db.Create(&users[i]).Error; err != nil {
			return log.Err("failed to create user", err, "email", users[i].Email)
		}
		log.Info("Seeded user", "email", users[i].Email)
	}

	owner := users[1]
	now := time.Now()

	plants := []Plant{
		{
			UserID:          owner.ID,
			Name:            "Monstera",
			Species:         "Monstera deliciosa",
			Category:        CategoryFoliage,
			Sunlight:        SunlightPartial,
			Health:          HealthThriving,
			WateringDays:    7,
			FertilizingDays: 30,
			LastWateredAt:   timePtr(now.AddDate(0, 0, -9)),
			AcquiredAt:      timePtr(now.AddDate(-1, 0, 0)),
		},
		{
			UserID:          owner.ID,
			Name:            "Basil",
			Species:         "Ocimum basilicum",
			Category:        CategoryHerb,
			Sunlight:        SunlightFull,
			Health:          HealthHealthy,
			WateringDays:    2,
			FertilizingDays: 14,
			LastWateredAt:   timePtr(now.AddDate(0, 0, -1)),
			AcquiredAt:      timePtr(now.AddDate(0, -2, 0)),
		},
		{
			UserID:       owner.ID,
			Name:         "Jade Plant",
			Species:      "Crassula ovata",
			Category:     CategorySucculent,
			Sunlight:     SunlightFull,
			Health:       HealthHealthy,
			WateringDays: 14,
			AcquiredAt:   timePtr(now.AddDate(0, 0, -3)),
		},
	}

	for i := range plants {
		var existing Plant
		if err := db.First(&existing, "user_id = ? AND name = ?", owner.ID, plants[i].Name).Error; err == nil {
			plants[i] = existing
			continue
		}
		if err := db.Create(&plants[i]).Error; err != nil {
			return log.Err("failed to create plant", err, "name", plants[i].Name)
		}
		log.Info("Seeded plant", "name", plants[i].Name)
	}

	careLogs := []CareLog{
		{
			UserID:      owner.ID,
			PlantID:     plants[0].ID,
			Kind:        CareWatering,
			PerformedAt: now.AddDate(0, 0, -9),
			Notes:       "Soil was fully dry",
		},
		{
			UserID:      owner.ID,
			PlantID:     plants[1].ID,
			Kind:        CareWatering,
			PerformedAt: now.AddDate(0, 0, -1),
		},
		{
			UserID:      owner.ID,
			PlantID:     plants[1].ID,
			Kind:        CareFertilizing,
			PerformedAt: now.AddDate(0, 0, -10),
			Notes:       "Half-strength liquid feed",
		},
	}

	for i := range careLogs {
		if err := db.Create(&careLogs[i]).Error; err != nil {
			return log.Err("failed to create care log", err, "plantID", careLogs[i].PlantID)
		}
	}

	posts := []ForumPost{
		{
			UserID: users[0].ID,
			Title:  "Welcome to the community",
			Body:   "Introduce yourself and show off your plants.",
			Tag:    "announcements",
			Pinned: true,
		},
		{
			UserID: owner.ID,
			Title:  "Yellow leaves on my monstera",
			Body:   "Lower leaves are turning yellow. Overwatering?",
			Tag:    "help",
		},
	}

	for i := range posts {
		var existing ForumPost
		if err := db.First(&existing, "title = ?", posts[i].Title).Error; err == nil {
			continue
		}
		if err := db.Create(&posts[i]).Error; err != nil {
			return log.Err("failed to create forum post", err, "title", posts[i].Title)
		}
		log.Info("Seeded forum post", "title", posts[i].Title)
	}

	log.Info("Seeding complete")
	return nil
}
