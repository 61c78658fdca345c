package models

import (
	"time"

	"github.com/google/uuid"
)

type PlantCategory string

const (
	CategoryFoliage   PlantCategory = "foliage"
	CategoryFlowering PlantCategory = "flowering"
	CategorySucculent PlantCategory = "succulent"
	CategoryHerb      PlantCategory = "herb"
	CategoryVegetable PlantCategory = "vegetable"
	CategoryTree      PlantCategory = "tree"
)

type SunlightLevel string

const (
	SunlightFull    SunlightLevel = "full-sun"
	SunlightPartial SunlightLevel = "partial-shade"
	SunlightLow     SunlightLevel = "low-light"
)

type HealthStatus string

const (
	HealthThriving   HealthStatus = "thriving"
	HealthHealthy    HealthStatus = "healthy"
	HealthStruggling HealthStatus = "struggling"
	HealthSick       HealthStatus = "sick"
	HealthDormant    HealthStatus = "dormant"
)

type Plant struct {
	BaseUUIDModel
	UserID           uuid.UUID     `gorm:"type:uuid;index;not null"          json:"userId"`
	Name             string        `gorm:"type:text;not null"                json:"name"`
	Species          string        `gorm:"type:text"                         json:"species"`
	Category         PlantCategory `gorm:"type:text;default:'foliage'"       json:"category"`
	Sunlight         SunlightLevel `gorm:"type:text;default:'partial-shade'" json:"sunlight"`
	Health           HealthStatus  `gorm:"type:text;default:'healthy'"       json:"health"`
	WateringDays     int           `gorm:"type:int;default:7"                json:"wateringDays"`
	FertilizingDays  int           `gorm:"type:int;default:30"               json:"fertilizingDays"`
	LastWateredAt    *time.Time    `gorm:"type:timestamp"                    json:"lastWateredAt,omitempty"`
	LastFertilizedAt *time.Time    `gorm:"type:timestamp"                    json:"lastFertilizedAt,omitempty"`
	AcquiredAt       *time.Time    `gorm:"type:timestamp"                    json:"acquiredAt,omitempty"`
	Notes            string        `gorm:"type:text"                         json:"notes"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// LastCaredAt returns the most recent care timestamp for the given kind,
// or nil if the plant has never received that kind of care.
func (p *Plant) LastCaredAt(kind CareKind) *time.Time {
	switch kind {
	case CareWatering:
		return p.LastWateredAt
	case CareFertilizing:
		return p.LastFertilizedAt
	}
	return nil
}

// FrequencyDays returns the care cadence for the given kind in days.
func (p *Plant) FrequencyDays(kind CareKind) int {
	switch kind {
	case CareWatering:
		return p.WateringDays
	case CareFertilizing:
		return p.FertilizingDays
	}
	return 0
}

// RecordCare stamps the plant with a care event of the given kind.
func (p *Plant) RecordCare(kind CareKind, at time.Time) {
	switch kind {
	case CareWatering:
		p.LastWateredAt = &at
	case CareFertilizing:
		p.LastFertilizedAt = &at
	}
}

type PlantRequest struct {
	Name            string        `json:"name"`
	Species         string        `json:"species"`
	Category        PlantCategory `json:"category"`
	Sunlight        SunlightLevel `json:"sunlight"`
	Health          HealthStatus  `json:"health"`
	WateringDays    int           `json:"wateringDays"`
	FertilizingDays int           `json:"fertilizingDays"`
	AcquiredAt      *time.Time    `json:"acquiredAt,omitempty"`
	Notes           string        `json:"notes"`
}
