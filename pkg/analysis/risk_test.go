package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

func TestScore(t *testing.T) {
	t.Run("CriticalSymptomFloorsScoreInCriticalBand", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "severe chest pain", Category: models.CategoryMedicalCondition, Frequency: 1},
		}
		result := Score(entities, 50)

		assert.Equal(t, models.RiskLevelCritical, result.Level)
		assert.InDelta(t, 7.8, result.Score, 0.001)
		assert.Contains(t, result.ActionPlan, "CRITICAL ALERT")
		assert.Contains(t, result.ActionPlan, "chest pain")
		assert.Equal(t, []string{"severe chest pain (x1)"}, result.Details.CriticalSymptoms)
	})

	t.Run("ModerateSymptom", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "mild rash", Category: models.CategoryMedicalCondition, Frequency: 1},
		}
		result := Score(entities, 10)

		assert.Equal(t, models.RiskLevelModerate, result.Level)
		assert.InDelta(t, 4.5, result.Score, 0.001)
		assert.Contains(t, result.ActionPlan, "WARNING")
		assert.Contains(t, result.ActionPlan, "rash")
	})

	t.Run("InertCategoryIsLowRisk", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "feeling fine", Category: models.CategoryPHI, Frequency: 1},
		}
		result := Score(entities, 0)

		assert.Equal(t, models.RiskLevelLow, result.Level)
		assert.Equal(t, 0.0, result.Score)
		assert.Contains(t, result.ActionPlan, "Low risk")
	})

	t.Run("ReportMultiplierScalesModerateScore", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "headache", Category: models.CategoryMedicalCondition, Frequency: 1},
		}
		// raw 2.0 becomes 3.0 under the >1000 reports band
		result := Score(entities, 2000)

		assert.Equal(t, models.RiskLevelModerate, result.Level)
		assert.InDelta(t, 4.8, result.Score, 0.001)
	})

	t.Run("StackedModerateSymptomsCrossIntoCritical", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "rash", Category: models.CategoryMedicalCondition, Frequency: 2},
			{Text: "vomiting", Category: models.CategoryMedicalCondition, Frequency: 2},
			{Text: "dizziness", Category: models.CategoryMedicalCondition, Frequency: 2},
			{Text: "fever", Category: models.CategoryMedicalCondition, Frequency: 2},
		}
		// raw 16.0 scaled by 1.5 is 24.0; the moderate band caps at 9,
		// which crosses the critical threshold
		result := Score(entities, 2000)

		assert.Equal(t, models.RiskLevelCritical, result.Level)
		assert.Equal(t, 9.0, result.Score)

		// No critical-lexicon entity was detected, so the alert names
		// the moderate symptoms that drove the escalation.
		assert.Contains(t, result.ActionPlan, "CRITICAL ALERT")
		assert.Contains(t, result.ActionPlan, "rash (x2)")
		assert.NotContains(t, result.ActionPlan, "Detected .")
	})

	t.Run("FrequencyIsCappedPerTier", func(t *testing.T) {
		uncapped := Score([]models.Entity{
			{Text: "anaphylaxis", Category: models.CategoryMedicalCondition, Frequency: 2},
		}, 0)
		capped := Score([]models.Entity{
			{Text: "anaphylaxis", Category: models.CategoryMedicalCondition, Frequency: 50},
		}, 0)

		assert.Equal(t, uncapped.Score, capped.Score)
		assert.Contains(t, capped.Details.CriticalSymptoms, "anaphylaxis (x50)")
	})

	t.Run("OneTierPerEntity", func(t *testing.T) {
		// Contains both a critical and a moderate phrase; only the
		// critical tier contributes.
		entities := []models.Entity{
			{Text: "chest pain with nausea", Category: models.CategoryMedicalCondition, Frequency: 1},
		}
		result := Score(entities, 0)

		assert.Len(t, result.Details.CriticalSymptoms, 1)
		assert.Empty(t, result.Details.ModerateSymptoms)
		assert.InDelta(t, 7.8, result.Score, 0.001)
	})

	t.Run("GenericConditionBump", func(t *testing.T) {
		entities := []models.Entity{
			{Text: "hypertension", Category: models.CategoryMedicalCondition, Frequency: 3},
		}
		// 0.5 * 3 = 1.5 raw, normalized to 0.8 in the low band
		result := Score(entities, 0)

		assert.Equal(t, models.RiskLevelLow, result.Level)
		assert.InDelta(t, 0.8, result.Score, 0.001)
	})

	t.Run("MissingFrequencyDefaultsToOne", func(t *testing.T) {
		withFreq := Score([]models.Entity{
			{Text: "nausea", Category: models.CategoryMedicalCondition, Frequency: 1},
		}, 0)
		withoutFreq := Score([]models.Entity{
			{Text: "nausea", Category: models.CategoryMedicalCondition},
		}, 0)

		assert.Equal(t, withFreq, withoutFreq)
	})

	t.Run("ZeroEntities", func(t *testing.T) {
		result := Score(nil, 5000)

		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, models.RiskLevelLow, result.Level)
		assert.NotEmpty(t, result.ActionPlan)
	})

	t.Run("ScoreAlwaysBounded", func(t *testing.T) {
		cases := [][]models.Entity{
			nil,
			{{Text: "chest pain", Category: models.CategoryMedicalCondition, Frequency: 100}},
			{
				{Text: "chest pain", Frequency: 2},
				{Text: "stroke", Frequency: 2},
				{Text: "anaphylaxis", Frequency: 2},
				{Text: "severe bleeding", Frequency: 2},
				{Text: "loss of consciousness", Frequency: 2},
			},
		}
		for _, entities := range cases {
			result := Score(entities, 1_000_000)
			assert.GreaterOrEqual(t, result.Score, 0.0)
			assert.LessOrEqual(t, result.Score, 10.0)
		}
	})
}

func TestReportsMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, reportsMultiplier(0))
	assert.Equal(t, 1.0, reportsMultiplier(100))
	assert.Equal(t, 1.15, reportsMultiplier(101))
	assert.Equal(t, 1.15, reportsMultiplier(500))
	assert.Equal(t, 1.3, reportsMultiplier(501))
	assert.Equal(t, 1.3, reportsMultiplier(1000))
	assert.Equal(t, 1.5, reportsMultiplier(1001))
}
