package models

import "context"

// Risk levels, ordered from least to most severe.
const (
	RiskLevelLow      = "Low Risk"
	RiskLevelModerate = "Moderate"
	RiskLevelCritical = "Critical"
)

// RiskLevels lists the classifier's class names in canonical order. The
// pretrained model's class indices map onto this slice.
var RiskLevels = []string{RiskLevelLow, RiskLevelModerate, RiskLevelCritical}

// CorrelationPair is one (drug, symptom) combination with the number of
// adverse event reports the registry holds for it. Pairs with zero reports
// are never included in result details.
type CorrelationPair struct {
	Drug    string `json:"drug"`
	Symptom string `json:"symptom"`
	Reports int    `json:"reports"`
}

// RiskDetails carries the evidence behind a risk assessment.
type RiskDetails struct {
	CriticalSymptoms []string `json:"critical_symptoms"`
	ModerateSymptoms []string `json:"moderate_symptoms"`
	FAERSReports     int      `json:"faers_reports"`
}

// RiskAssessment is the scoring engine's terminal artifact. Score is always
// in [0, 10]; ActionPlan is a deterministic function of Level, the detected
// symptom lists, and the aggregate report count.
type RiskAssessment struct {
	Score      float64     `json:"score"`
	Level      string      `json:"level"`
	ActionPlan string      `json:"action_plan"`
	Details    RiskDetails `json:"details"`
}

// FAERSData aggregates the correlation engine's output for a request.
type FAERSData struct {
	TotalReports int               `json:"total_reports"`
	Details      []CorrelationPair `json:"details"`
}

// MLAnalysis is the auxiliary classifier's advisory output. Probabilities
// sum to 1 over the low/moderate/critical classes.
type MLAnalysis struct {
	Prediction    string             `json:"ml_prediction"`
	Confidence    float64            `json:"ml_confidence"`
	Probabilities map[string]float64 `json:"ml_probabilities"`
}

// AnalysisResult is the merged output of one pipeline run. MLAnalysis is
// present only when the auxiliary classifier produced a result.
type AnalysisResult struct {
	Entities     []Entity        `json:"entities"`
	RiskAnalysis *RiskAssessment `json:"risk_analysis"`
	FAERSData    *FAERSData      `json:"faers_data"`
	MLAnalysis   *MLAnalysis     `json:"ml_analysis,omitempty"`
}

// ReportLookup is the adverse event registry collaborator. Implementations
// may fail; the correlation engine treats any error as zero evidence.
type ReportLookup interface {
	CountReports(ctx context.Context, drug, symptom string) (int, error)
}

// RiskClassifier is the pretrained categorical model behind the auxiliary
// prediction. Encode methods return -1 for values outside the trained
// vocabulary. Predict returns the winning class index into RiskLevels and
// the full class probability distribution.
type RiskClassifier interface {
	EncodeDrug(value string) int
	EncodeSymptom(value string) int
	Predict(features []float64) (int, []float64, error)
}

// EntityExtractor is the external medical NLP collaborator that turns a
// transcript into raw entity mentions.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}
