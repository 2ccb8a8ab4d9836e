package models

import "strings"

// Entity categories produced by the medical NLP provider. Categories other
// than medication and medical condition are carried through but treated as
// inert by the analysis pipeline.
const (
	CategoryMedication       = "MEDICATION"
	CategoryMedicalCondition = "MEDICAL_CONDITION"
	CategoryPHI              = "PROTECTED_HEALTH_INFORMATION"
)

// Trait names that exclude an entity from active analysis.
const (
	TraitNegation         = "NEGATION"
	TraitPertainsToFamily = "PERTAINS_TO_FAMILY"
)

// Trait is a qualifier the NLP provider attaches to an entity, such as
// negation or family history attribution.
type Trait struct {
	Name  string  `json:"name"`
	Score float64 `json:"score,omitempty"`
}

// Entity is one clinically extracted mention. Frequency is assigned by the
// normalizer and counts how many raw mentions collapsed into this entity.
type Entity struct {
	Text       string  `json:"text"`
	Category   string  `json:"category"`
	Type       string  `json:"type,omitempty"`
	Confidence float64 `json:"confidence"`
	Traits     []Trait `json:"traits,omitempty"`
	Frequency  int     `json:"frequency"`
}

// HasTrait reports whether the entity carries the named trait.
func (e Entity) HasTrait(name string) bool {
	for _, t := range e.Traits {
		if t.Name == name {
			return true
		}
	}
	return false
}

// NormalizedText is the case-insensitive identity of the entity.
func (e Entity) NormalizedText() string {
	return strings.ToLower(e.Text)
}

// IsMedication reports whether the entity is an active medication mention.
func (e Entity) IsMedication() bool {
	return e.Category == CategoryMedication
}

// IsCondition reports whether the entity is a symptom or condition mention.
func (e Entity) IsCondition() bool {
	return e.Category == CategoryMedicalCondition
}
