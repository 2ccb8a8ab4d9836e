package riskml

import "encoding/json"

// LabelEncoder maps categorical string values onto integer ids, the way
// the upstream training pipeline encoded drug and symptom names. The
// reverse index is always built eagerly, so a fitted or loaded encoder is
// safe for concurrent Encode calls.
type LabelEncoder struct {
	Classes []string `json:"classes"`

	index map[string]int
}

// NewLabelEncoder fits an encoder over the given values. The vocabulary
// preserves first-seen order, so id 0 is the first value encountered.
func NewLabelEncoder(values []string) *LabelEncoder {
	encoder := &LabelEncoder{index: make(map[string]int)}
	for _, value := range values {
		if _, ok := encoder.index[value]; !ok {
			encoder.Classes = append(encoder.Classes, value)
			encoder.index[value] = len(encoder.Classes) - 1
		}
	}
	return encoder
}

// UnmarshalJSON restores the vocabulary and rebuilds the reverse index
// before the encoder is handed to callers.
func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	type vocabulary LabelEncoder
	var decoded vocabulary
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	e.Classes = decoded.Classes
	e.index = make(map[string]int, len(e.Classes))
	for i, class := range e.Classes {
		e.index[class] = i
	}
	return nil
}

// Encode returns the id for value, or -1 when the value is outside the
// fitted vocabulary. Safe for concurrent use.
func (e *LabelEncoder) Encode(value string) int {
	if id, ok := e.index[value]; ok {
		return id
	}
	return -1
}
