package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RecommendationKind string

const (
	RecommendationAdvice    RecommendationKind = "care_advice"
	RecommendationDiagnosis RecommendationKind = "disease_diagnosis"
)

type DiagnosisSeverity string

const (
	SeverityLow    DiagnosisSeverity = "low"
	SeverityMedium DiagnosisSeverity = "medium"
	SeverityHigh   DiagnosisSeverity = "high"
)

// AIRecommendation stores one model invocation's structured output, keyed to a
// user and plant. Write-once per analysis; read back for history display.
type AIRecommendation struct {
	BaseUUIDModel
	UserID     uuid.UUID          `gorm:"type:uuid;index;not null" json:"userId"`
	PlantID    uuid.UUID          `gorm:"type:uuid;index;not null" json:"plantId"`
	Kind       RecommendationKind `gorm:"type:text;not null"       json:"kind"`
	Prompt     string             `gorm:"type:text"                json:"-"`
	Advice     string             `gorm:"type:text"                json:"advice,omitempty"`
	Diagnosis  string             `gorm:"type:text"                json:"diagnosis,omitempty"`
	Severity   DiagnosisSeverity  `gorm:"type:text"                json:"severity,omitempty"`
	Confidence decimal.Decimal    `gorm:"type:decimal(4,3)"        json:"confidence"`
	Treatments datatypes.JSON     `gorm:"type:jsonb"               json:"treatments,omitempty"`
	ModelName  string             `gorm:"type:text"                json:"modelName"`

	Plant *Plant `gorm:"foreignKey:PlantID" json:"-"`
}

// ClampConfidence normalizes the confidence score into [0, 1]. Model output is
// untrusted and occasionally reports percentages or negatives.
func (r *AIRecommendation) ClampConfidence() {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)

	if r.Confidence.GreaterThan(one) && r.Confidence.LessThanOrEqual(hundred) {
		r.Confidence = r.Confidence.Div(hundred)
	}
	if r.Confidence.GreaterThan(one) {
		r.Confidence = one
	}
	if r.Confidence.IsNegative() {
		r.Confidence = decimal.Zero
	}
}

type AdviceRequest struct {
	PlantID  uuid.UUID `json:"plantId"`
	Question string    `json:"question,omitempty"`
}

type DiagnosisRequest struct {
	PlantID  uuid.UUID `json:"plantId"`
	Symptoms string    `json:"symptoms"`
}
