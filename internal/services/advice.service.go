package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agrotrack/config"
	"agrotrack/internal/logger"
	. "agrotrack/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// Diagnosis is the structured payload parsed from a disease analysis.
type Diagnosis struct {
	Diagnosis  string   `json:"diagnosis"`
	Severity   string   `json:"severity"`
	Confidence float64  `json:"confidence"`
	Treatments []string `json:"treatments"`
}

// defaultDiagnosis is the fallback used when the model returns something
// unparseable. A degraded answer beats a propagated parse failure here.
var defaultDiagnosis = Diagnosis{
	Diagnosis:  "Unable to determine a specific issue from the described symptoms. Monitor the plant and check watering, light, and drainage.",
	Severity:   string(SeverityMedium),
	Confidence: 0.5,
	Treatments: []string{
		"Check soil moisture before the next watering",
		"Inspect leaves and stems for pests",
		"Ensure the pot drains freely",
	},
}

// AdviceService wraps the Gemini API for plant-care advice and disease
// diagnosis. A nil *AdviceService means the feature is disabled (no API key).
type AdviceService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	log       logger.Logger
}

// NewAdviceService creates the Gemini client. Returns (nil, nil) when no API
// key is configured so callers can treat the feature as disabled.
func NewAdviceService(ctx context.Context, config config.Config) (*AdviceService, error) {
	log := logger.New("adviceService")

	if config.GeminiAPIKey == "" {
		log.Warn("Gemini API key not configured, AI advice disabled")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.GeminiAPIKey))
	if err != nil {
		return nil, log.Err("failed to create Gemini client", err)
	}

	model := client.GenerativeModel(config.GeminiModel)

	return &AdviceService{
		client:    client,
		model:     model,
		modelName: config.GeminiModel,
		log:       log,
	}, nil
}

func (s *AdviceService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *AdviceService) ModelName() string {
	return s.modelName
}

// GenerateCareAdvice asks the model for free-text care advice for a plant.
func (s *AdviceService) GenerateCareAdvice(
	ctx context.Context,
	plant *Plant,
	question string,
) (string, error) {
	log := s.log.Function("GenerateCareAdvice")

	prompt := buildAdvicePrompt(plant, question)
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", log.Err("failed to generate care advice", err, "plantID", plant.ID)
	}

	return text, nil
}

// DiagnoseDisease asks the model for a structured diagnosis. Malformed model
// output falls back to a fixed default payload rather than returning an
// error.
func (s *AdviceService) DiagnoseDisease(
	ctx context.Context,
	plant *Plant,
	symptoms string,
) (Diagnosis, string, error) {
	log := s.log.Function("DiagnoseDisease")

	prompt := buildDiagnosisPrompt(plant, symptoms)
	text, err := s.generate(ctx, prompt)
	if err != nil {
		return Diagnosis{}, prompt, log.Err("failed to generate diagnosis", err, "plantID", plant.ID)
	}

	diagnosis, ok := parseDiagnosis(text)
	if !ok {
		log.Warn("model returned unparseable diagnosis, using fallback",
			"plantID", plant.ID, "response", text)
		return defaultDiagnosis, prompt, nil
	}

	return diagnosis, prompt, nil
}

func (s *AdviceService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("generated content is not text")
	}

	return string(text), nil
}

func buildAdvicePrompt(plant *Plant, question string) string {
	var sb strings.Builder
	sb.WriteString("You are a houseplant care expert. Give concise, practical advice.\n\n")
	sb.WriteString(fmt.Sprintf("Plant: %s", plant.Name))
	if plant.Species != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", plant.Species))
	}
	sb.WriteString(fmt.Sprintf("\nCategory: %s\nSunlight: %s\nHealth: %s\n",
		plant.Category, plant.Sunlight, plant.Health))
	sb.WriteString(fmt.Sprintf("Watering cadence: every %d days\n", plant.WateringDays))

	if question != "" {
		sb.WriteString(fmt.Sprintf("\nOwner's question: %s\n", question))
	} else {
		sb.WriteString("\nProvide general care advice for this plant.\n")
	}

	return sb.String()
}

func buildDiagnosisPrompt(plant *Plant, symptoms string) string {
	var sb strings.Builder
	sb.WriteString("You are a plant pathologist. Analyze the symptoms and respond with ONLY a JSON object, no markdown, in this exact shape:\n")
	sb.WriteString(`{"diagnosis": string, "severity": "low"|"medium"|"high", "confidence": number between 0 and 1, "treatments": [string, ...]}`)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Plant: %s", plant.Name))
	if plant.Species != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", plant.Species))
	}
	sb.WriteString(fmt.Sprintf("\nSunlight: %s\nWatering cadence: every %d days\n",
		plant.Sunlight, plant.WateringDays))
	sb.WriteString(fmt.Sprintf("\nObserved symptoms: %s\n", symptoms))

	return sb.String()
}

// parseDiagnosis extracts a Diagnosis from raw model output. Models often
// wrap JSON in markdown fences despite instructions, so those are stripped
// before unmarshalling.
func parseDiagnosis(text string) (Diagnosis, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var diagnosis Diagnosis
	if err := json.Unmarshal([]byte(cleaned), &diagnosis); err != nil {
		return Diagnosis{}, false
	}

	if diagnosis.Diagnosis == "" {
		return Diagnosis{}, false
	}

	switch diagnosis.Severity {
	case string(SeverityLow), string(SeverityMedium), string(SeverityHigh):
	default:
		diagnosis.Severity = string(SeverityMedium)
	}

	return diagnosis, true
}

// ToRecommendation converts a diagnosis into a persistable record with the
// confidence clamped into [0, 1].
func (d Diagnosis) ToRecommendation(userID, plantID uuid.UUID, prompt, modelName string) (*AIRecommendation, error) {
	treatments, err := json.Marshal(d.Treatments)
	if err != nil {
		return nil, err
	}

	rec := &AIRecommendation{
		Kind:       RecommendationDiagnosis,
		Prompt:     prompt,
		Diagnosis:  d.Diagnosis,
		Severity:   DiagnosisSeverity(d.Severity),
		Confidence: decimal.NewFromFloat(d.Confidence),
		Treatments: treatments,
		ModelName:  modelName,
	}
	rec.UserID = userID
	rec.PlantID = plantID
	rec.ClampConfidence()

	return rec, nil
}
