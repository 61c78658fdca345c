package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CareKind string

const (
	CareWatering    CareKind = "watering"
	CareFertilizing CareKind = "fertilizing"
	CarePruning     CareKind = "pruning"
	CareRepotting   CareKind = "repotting"
)

// TrackedCareKinds are the care categories the reminder engine schedules.
// Pruning and repotting are logged but not reminded.
var TrackedCareKinds = []CareKind{CareWatering, CareFertilizing}

func (k CareKind) Valid() bool {
	switch k {
	case CareWatering, CareFertilizing, CarePruning, CareRepotting:
		return true
	}
	return false
}

// CareLog is an append-only record of one care event. Rows are never updated
// after creation.
type CareLog struct {
	BaseUUIDModel
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null"      json:"userId"`
	PlantID     uuid.UUID      `gorm:"type:uuid;index;not null"      json:"plantId"`
	Kind        CareKind       `gorm:"type:text;not null"            json:"kind"`
	PerformedAt time.Time      `gorm:"type:timestamp;not null;index" json:"performedAt"`
	Notes       string         `gorm:"type:text"                     json:"notes"`
	Photos      datatypes.JSON `gorm:"type:jsonb"                    json:"photos,omitempty"`

	Plant *Plant `gorm:"foreignKey:PlantID" json:"-"`
}

type CareLogRequest struct {
	PlantID     uuid.UUID  `json:"plantId"`
	Kind        CareKind   `json:"kind"`
	PerformedAt *time.Time `json:"performedAt,omitempty"`
	Notes       string     `json:"notes"`
	Photos      []string   `json:"photos,omitempty"`
}
