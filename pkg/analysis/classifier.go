package analysis

import (
	"strings"

	"github.com/deepcare-ai/deepcare/pkg/models"
)

// PredictRisk maps normalized entities and the aggregate report count into
// the auxiliary classifier's categorical prediction. It is advisory only:
// it returns nil when the classifier is absent, when the entities don't
// include at least one medication and one condition, or on any internal
// failure. It never overrides the primary score.
func PredictRisk(
	classifier models.RiskClassifier,
	entities []models.Entity,
	totalReports int,
) *models.MLAnalysis {
	if classifier == nil {
		return nil
	}

	drug, symptom, ok := representativeFeatures(entities)
	if !ok {
		return nil
	}

	drugID := classifier.EncodeDrug(drug)
	if drugID < 0 {
		// Unseen value: substitute the vocabulary's first class rather
		// than failing.
		drugID = 0
	}
	symptomID := classifier.EncodeSymptom(symptom)
	if symptomID < 0 {
		symptomID = 0
	}

	classIdx, probs, err := classifier.Predict(
		[]float64{float64(drugID), float64(symptomID), float64(totalReports)},
	)
	if err != nil || classIdx < 0 || classIdx >= len(models.RiskLevels) ||
		len(probs) != len(models.RiskLevels) {
		log.Warnf("auxiliary risk prediction unavailable: %v", err)
		return nil
	}

	return &models.MLAnalysis{
		Prediction: models.RiskLevels[classIdx],
		Confidence: probs[classIdx],
		Probabilities: map[string]float64{
			"low":      probs[0],
			"moderate": probs[1],
			"critical": probs[2],
		},
	}
}

// representativeFeatures picks the first medication and first condition in
// the normalizer's stable order.
func representativeFeatures(entities []models.Entity) (drug, symptom string, ok bool) {
	for _, entity := range entities {
		switch {
		case drug == "" && entity.IsMedication():
			drug = strings.ToLower(entity.Text)
		case symptom == "" && entity.IsCondition():
			symptom = strings.ToLower(entity.Text)
		}
		if drug != "" && symptom != "" {
			return drug, symptom, true
		}
	}
	return "", "", false
}
