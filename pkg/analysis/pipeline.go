package analysis

import (
	"context"

	"github.com/deepcare-ai/deepcare/internal"
	"github.com/deepcare-ai/deepcare/pkg/models"
)

var log = internal.GetLogger()

// Force compiler to validate that Pipeline implements the Analyzer interface.
var _ models.Analyzer = &Pipeline{}

// Pipeline wires the three analysis stages together: normalization,
// registry correlation, and risk scoring, with the optional auxiliary
// classifier on the side. It is stateless across requests except for the
// correlation engine's lookup cache.
type Pipeline struct {
	engine     *Engine
	classifier models.RiskClassifier
}

// NewPipeline creates an analysis pipeline. The classifier may be nil, in
// which case results simply carry no auxiliary prediction.
func NewPipeline(engine *Engine, classifier models.RiskClassifier) *Pipeline {
	return &Pipeline{engine: engine, classifier: classifier}
}

// Analyze runs one request's entities through the pipeline. The result is
// always total: score, level, and action plan are well-formed even when the
// registry and the classifier are both unavailable.
func (p *Pipeline) Analyze(ctx context.Context, raw []models.Entity) *models.AnalysisResult {
	entities := Normalize(raw)

	var drugs, symptoms []string
	for _, entity := range entities {
		switch {
		case entity.IsMedication():
			drugs = append(drugs, entity.Text)
		case entity.IsCondition():
			symptoms = append(symptoms, entity.Text)
		}
	}

	totalReports, details := p.engine.Correlate(ctx, drugs, symptoms)
	log.Debugf("correlated %d drugs x %d symptoms: %d total reports",
		len(drugs), len(symptoms), totalReports)

	assessment := Score(entities, totalReports)

	return &models.AnalysisResult{
		Entities:     entities,
		RiskAnalysis: &assessment,
		FAERSData: &models.FAERSData{
			TotalReports: totalReports,
			Details:      details,
		},
		MLAnalysis: PredictRisk(p.classifier, entities, totalReports),
	}
}
