package riskml

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/deepcare-ai/deepcare/internal"
	"github.com/deepcare-ai/deepcare/pkg/models"
)

var log = internal.GetLogger()

var _ models.RiskClassifier = &Model{}

// Model bundles the fitted forest with the drug and symptom vocabularies,
// the complete pretrained artifact behind the auxiliary risk prediction.
// Class indices follow models.RiskLevels.
type Model struct {
	Forest   *Forest       `json:"forest"`
	Drugs    *LabelEncoder `json:"drug_encoder"`
	Symptoms *LabelEncoder `json:"symptom_encoder"`
}

// EncodeDrug returns the feature id for a drug name, -1 if unseen.
func (m *Model) EncodeDrug(value string) int {
	return m.Drugs.Encode(value)
}

// EncodeSymptom returns the feature id for a symptom name, -1 if unseen.
func (m *Model) EncodeSymptom(value string) int {
	return m.Symptoms.Encode(value)
}

// Predict classifies a (drug id, symptom id, report count) feature vector.
func (m *Model) Predict(features []float64) (int, []float64, error) {
	return m.Forest.Predict(features)
}

// Save writes the model artifact as JSON.
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a model artifact saved by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	if model.Forest == nil || model.Drugs == nil || model.Symptoms == nil {
		return nil, fmt.Errorf("model artifact %s is incomplete", path)
	}
	log.Infof("loaded risk classifier from %s (%d trees, %d drugs, %d symptoms)",
		path, len(model.Forest.Trees), len(model.Drugs.Classes), len(model.Symptoms.Classes))
	return &model, nil
}
