package models

import (
	"time"

	"github.com/google/uuid"
)

type ReminderPriority string

const (
	PriorityLow    ReminderPriority = "low"
	PriorityMedium ReminderPriority = "medium"
	PriorityHigh   ReminderPriority = "high"
	PriorityUrgent ReminderPriority = "urgent"
)

// Rank orders priorities for comparison: urgent > high > medium > low.
func (p ReminderPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	}
	return 0
}

type ReminderStatus string

const (
	StatusPending   ReminderStatus = "pending"
	StatusSnoozed   ReminderStatus = "snoozed"
	StatusCompleted ReminderStatus = "completed"
)

// Reminder is a derived scheduling hint, not a source-of-truth entity. Rows
// are regenerated from Plant and CareLog state; snooze and complete mutate
// the current occurrence only.
type Reminder struct {
	BaseUUIDModel
	UserID        uuid.UUID        `gorm:"type:uuid;index;not null"      json:"userId"`
	PlantID       uuid.UUID        `gorm:"type:uuid;index;not null"      json:"plantId"`
	Kind          CareKind         `gorm:"type:text;not null"            json:"kind"`
	DueAt         time.Time        `gorm:"type:timestamp;not null;index" json:"dueAt"`
	Priority      ReminderPriority `gorm:"type:text;default:'low'"       json:"priority"`
	Status        ReminderStatus   `gorm:"type:text;default:'pending'"   json:"status"`
	FrequencyDays int              `gorm:"type:int;not null"             json:"frequencyDays"`
	CompletedAt   *time.Time       `gorm:"type:timestamp"                json:"completedAt,omitempty"`

	Plant *Plant `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
}

// Terminal reports whether the reminder occurrence can no longer transition.
func (r *Reminder) Terminal() bool {
	return r.Status == StatusCompleted
}

// ReminderPreferences is the per-user scheduling configuration. It replaces
// ambient global preference state with an explicit object handed to the
// reminder engine.
type ReminderPreferences struct {
	BaseUUIDModel
	UserID                 uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	DefaultWateringDays    int       `gorm:"type:int;default:7"             json:"defaultWateringDays"`
	DefaultFertilizingDays int       `gorm:"type:int;default:30"            json:"defaultFertilizingDays"`
	SnoozeHours            int       `gorm:"type:int;default:24"            json:"snoozeHours"`
	LookaheadDays          int       `gorm:"type:int;default:2"             json:"lookaheadDays"`
	UrgentMultiplier       float64   `gorm:"type:float;default:2"           json:"urgentMultiplier"`
	NewPlantGraceDays      int       `gorm:"type:int;default:0"             json:"newPlantGraceDays"`
	SeasonalAdjustment     bool      `gorm:"type:bool;default:true"         json:"seasonalAdjustment"`
}

type ReminderPreferencesRequest struct {
	DefaultWateringDays    *int     `json:"defaultWateringDays,omitempty"`
	DefaultFertilizingDays *int     `json:"defaultFertilizingDays,omitempty"`
	SnoozeHours            *int     `json:"snoozeHours,omitempty"`
	LookaheadDays          *int     `json:"lookaheadDays,omitempty"`
	UrgentMultiplier       *float64 `json:"urgentMultiplier,omitempty"`
	NewPlantGraceDays      *int     `json:"newPlantGraceDays,omitempty"`
	SeasonalAdjustment     *bool    `json:"seasonalAdjustment,omitempty"`
}

// SnoozeRequest carries an optional snooze length override in hours.
type SnoozeRequest struct {
	Hours *int `json:"hours,omitempty"`
}
