package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

// Severity lexicons, matched by case-insensitive substring containment.
// Ordered data, not code: extend the lists without touching the scoring
// algorithm.
var (
	criticalSymptoms = []string{
		"chest pain", "anaphylaxis", "shortness of breath",
		"difficulty breathing", "stroke", "heart attack",
		"severe bleeding", "loss of consciousness", "suicidal thoughts",
	}
	moderateSymptoms = []string{
		"rash", "vomiting", "dizziness", "nausea",
		"fever", "headache", "diarrhea", "palpitations",
	}
)

// Per-entity contribution weights. Frequency is capped so a single symptom
// repeated throughout an encounter cannot inflate the score without bound.
const (
	criticalWeight  = 4.0
	moderateWeight  = 2.0
	conditionWeight = 0.5

	criticalFreqCap  = 2
	moderateFreqCap  = 2
	conditionFreqCap = 3
)

// External evidence multiplier bands over the aggregate report count.
const (
	reportsBandHigh = 1000
	reportsBandMid  = 500
	reportsBandLow  = 100
)

// Score produces a bounded risk assessment from normalized entities and the
// aggregate adverse event report count. Each entity contributes through
// exactly one tier, checked in priority order: critical lexicon, moderate
// lexicon, then a small bump for any other medical condition. The raw sum
// is adjusted multiplicatively by the external evidence band and then
// normalized into a [0, 10] scale whose floor depends on the worst tier
// detected, so any critical detection lands in the critical band.
func Score(entities []models.Entity, totalReports int) models.RiskAssessment {
	var rawScore float64
	var detectedCritical, detectedModerate []string

	for _, entity := range entities {
		text := strings.ToLower(entity.Text)
		frequency := entity.Frequency
		if frequency < 1 {
			frequency = 1
		}

		switch {
		case containsAny(text, criticalSymptoms):
			rawScore += criticalWeight * float64(capped(frequency, criticalFreqCap))
			detectedCritical = append(detectedCritical,
				fmt.Sprintf("%s (x%d)", entity.Text, frequency))
		case containsAny(text, moderateSymptoms):
			rawScore += moderateWeight * float64(capped(frequency, moderateFreqCap))
			detectedModerate = append(detectedModerate,
				fmt.Sprintf("%s (x%d)", entity.Text, frequency))
		case entity.Category == models.CategoryMedicalCondition:
			rawScore += conditionWeight * float64(capped(frequency, conditionFreqCap))
		}
	}

	rawScore *= reportsMultiplier(totalReports)

	var final float64
	switch {
	case len(entities) == 0:
		final = 0
	case len(detectedCritical) > 0:
		final = math.Min(7+rawScore/5, 10)
	case len(detectedModerate) > 0:
		final = math.Min(4+rawScore/4, 9)
	default:
		final = math.Min(rawScore/2, 6)
	}
	final = math.Round(final*10) / 10

	level := models.RiskLevelLow
	switch {
	case len(detectedCritical) > 0 || final >= 7:
		level = models.RiskLevelCritical
	case len(detectedModerate) > 0 || final >= 4:
		level = models.RiskLevelModerate
	}

	return models.RiskAssessment{
		Score:      final,
		Level:      level,
		ActionPlan: actionPlan(level, detectedCritical, detectedModerate, totalReports),
		Details: models.RiskDetails{
			CriticalSymptoms: detectedCritical,
			ModerateSymptoms: detectedModerate,
			FAERSReports:     totalReports,
		},
	}
}

// reportsMultiplier maps the aggregate report count onto the external
// evidence bands. Evidence scales the clinical signal rather than adding
// to it: no symptoms means no score regardless of report volume.
func reportsMultiplier(totalReports int) float64 {
	switch {
	case totalReports > reportsBandHigh:
		return 1.5
	case totalReports > reportsBandMid:
		return 1.3
	case totalReports > reportsBandLow:
		return 1.15
	default:
		return 1.0
	}
}

func actionPlan(level string, critical, moderate []string, totalReports int) string {
	switch level {
	case models.RiskLevelCritical:
		detected := critical
		if len(detected) == 0 {
			// Critical reached by score escalation alone; name the
			// symptoms that drove it.
			detected = moderate
		}
		return fmt.Sprintf(
			"CRITICAL ALERT: Detected %s. Immediate medical attention required. "+
				"FAERS data indicates %d related reports. "+
				"Advise patient to go to ER immediately.",
			strings.Join(detected, ", "), totalReports)
	case models.RiskLevelModerate:
		return fmt.Sprintf(
			"WARNING: Detected %s. Monitor closely. FAERS reports: %d. "+
				"Consult a doctor if symptoms persist or worsen.",
			strings.Join(moderate, ", "), totalReports)
	default:
		return "Low risk detected. Continue monitoring. " +
			"Adhere to prescribed dosage and report any new symptoms."
	}
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func capped(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}
