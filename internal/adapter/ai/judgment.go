package ai

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

var validate = validator.New()

// ParseJudgment decodes, clamps and validates a raw AI response body into a
// judgment. Any failure wraps domain.ErrSchemaInvalid so the blending layer
// treats it identically to a network failure.
func ParseJudgment(raw string) (domain.AIJudgment, error) {
	cleaned := CleanJSONResponse(raw)

	var j domain.AIJudgment
	if err := json.Unmarshal([]byte(cleaned), &j); err != nil {
		return domain.AIJudgment{}, fmt.Errorf("%w: decode judgment: %v", domain.ErrSchemaInvalid, err)
	}

	// Clamp scores before validation: a model drifting slightly out of range
	// is usable signal, not a failure.
	j.OverallScore = clampScore(j.OverallScore)
	j.SkillMatch = clampScore(j.SkillMatch)
	j.ExperienceScore = clampScore(j.ExperienceScore)
	j.EducationScore = clampScore(j.EducationScore)
	j.ProjectAlignment = clampScore(j.ProjectAlignment)
	j.Confidence = clampScore(j.Confidence)

	if err := validate.Struct(j); err != nil {
		return domain.AIJudgment{}, fmt.Errorf("%w: judgment validation: %v", domain.ErrSchemaInvalid, err)
	}
	return j, nil
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
