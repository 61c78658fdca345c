package services

import (
	"testing"

	. "agrotrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlant() *Plant {
	return &Plant{
		Name:         "Monstera",
		Species:      "Monstera deliciosa",
		Category:     CategoryFoliage,
		Sunlight:     SunlightPartial,
		Health:       HealthHealthy,
		WateringDays: 7,
	}
}

func TestParseDiagnosis(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantOK   bool
		expected Diagnosis
	}{
		{
			name:   "clean json",
			input:  `{"diagnosis": "root rot", "severity": "high", "confidence": 0.9, "treatments": ["repot", "trim roots"]}`,
			wantOK: true,
			expected: Diagnosis{
				Diagnosis:  "root rot",
				Severity:   "high",
				Confidence: 0.9,
				Treatments: []string{"repot", "trim roots"},
			},
		},
		{
			name:   "markdown fenced json",
			input:  "```json\n{\"diagnosis\": \"spider mites\", \"severity\": \"low\", \"confidence\": 0.7, \"treatments\": [\"neem oil\"]}\n```",
			wantOK: true,
			expected: Diagnosis{
				Diagnosis:  "spider mites",
				Severity:   "low",
				Confidence: 0.7,
				Treatments: []string{"neem oil"},
			},
		},
		{
			name:   "unknown severity defaults to medium",
			input:  `{"diagnosis": "leaf spot", "severity": "catastrophic", "confidence": 0.5}`,
			wantOK: true,
			expected: Diagnosis{
				Diagnosis:  "leaf spot",
				Severity:   "medium",
				Confidence: 0.5,
			},
		},
		{
			name:   "not json",
			input:  "I think your plant has root rot.",
			wantOK: false,
		},
		{
			name:   "empty diagnosis rejected",
			input:  `{"diagnosis": "", "severity": "low", "confidence": 0.4}`,
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			diagnosis, ok := parseDiagnosis(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.expected, diagnosis)
			}
		})
	}
}

func TestBuildAdvicePrompt(t *testing.T) {
	plant := testPlant()

	prompt := buildAdvicePrompt(plant, "Why are the leaves curling?")
	assert.Contains(t, prompt, "Monstera")
	assert.Contains(t, prompt, "Monstera deliciosa")
	assert.Contains(t, prompt, "every 7 days")
	assert.Contains(t, prompt, "Why are the leaves curling?")

	general := buildAdvicePrompt(plant, "")
	assert.Contains(t, general, "general care advice")
}

func TestBuildDiagnosisPromptRequestsJSON(t *testing.T) {
	prompt := buildDiagnosisPrompt(testPlant(), "yellowing lower leaves")

	assert.Contains(t, prompt, `"diagnosis"`)
	assert.Contains(t, prompt, "yellowing lower leaves")
}

func TestToRecommendationClampsConfidence(t *testing.T) {
	testCases := []struct {
		name       string
		confidence float64
		expected   string
	}{
		{"in range", 0.85, "0.85"},
		{"percentage scale", 85, "0.85"},
		{"negative", -0.2, "0"},
		{"above hundred", 250, "1"},
	}

	userID := uuid.Must(uuid.NewV7())
	plantID := uuid.Must(uuid.NewV7())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := Diagnosis{
				Diagnosis:  "root rot",
				Severity:   "high",
				Confidence: tc.confidence,
				Treatments: []string{"repot"},
			}

			rec, err := d.ToRecommendation(userID, plantID, "prompt", "gemini-1.5-flash")
			require.NoError(t, err)

			expected, err := decimal.NewFromString(tc.expected)
			require.NoError(t, err)
			assert.True(t, rec.Confidence.Equal(expected),
				"confidence %s, expected %s", rec.Confidence, expected)
			assert.Equal(t, RecommendationDiagnosis, rec.Kind)
			assert.Equal(t, userID, rec.UserID)
			assert.JSONEq(t, `["repot"]`, string(rec.Treatments))
		})
	}
}

func TestDefaultDiagnosisIsUsable(t *testing.T) {
	assert.NotEmpty(t, defaultDiagnosis.Diagnosis)
	assert.Equal(t, string(SeverityMedium), defaultDiagnosis.Severity)
	assert.NotEmpty(t, defaultDiagnosis.Treatments)
	assert.GreaterOrEqual(t, defaultDiagnosis.Confidence, 0.0)
	assert.LessOrEqual(t, defaultDiagnosis.Confidence, 1.0)
}
