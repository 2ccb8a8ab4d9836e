package riskml

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelEncoder(t *testing.T) {
	t.Run("AssignsIdsInFirstSeenOrder", func(t *testing.T) {
		encoder := NewLabelEncoder([]string{"warfarin", "aspirin", "warfarin", "metformin"})

		assert.Equal(t, []string{"warfarin", "aspirin", "metformin"}, encoder.Classes)
		assert.Equal(t, 0, encoder.Encode("warfarin"))
		assert.Equal(t, 1, encoder.Encode("aspirin"))
		assert.Equal(t, 2, encoder.Encode("metformin"))
	})

	t.Run("UnseenValueEncodesToMinusOne", func(t *testing.T) {
		encoder := NewLabelEncoder([]string{"aspirin"})
		assert.Equal(t, -1, encoder.Encode("ibuprofen"))
	})

	t.Run("LoadedEncoderIsSafeForConcurrentEncode", func(t *testing.T) {
		// A loaded model serves every analyze request without
		// synchronization, so Encode must not mutate the encoder.
		var encoder LabelEncoder
		require.NoError(t, json.Unmarshal(
			[]byte(`{"classes":["warfarin","aspirin","metformin"]}`), &encoder))

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					assert.Equal(t, 1, encoder.Encode("aspirin"))
					assert.Equal(t, -1, encoder.Encode("ibuprofen"))
				}
			}()
		}
		wg.Wait()
	})

	t.Run("VocabularySurvivesJSONRoundTrip", func(t *testing.T) {
		encoder := NewLabelEncoder([]string{"nausea", "dizziness"})

		data, err := json.Marshal(encoder)
		require.NoError(t, err)

		var restored LabelEncoder
		require.NoError(t, json.Unmarshal(data, &restored))

		assert.Equal(t, 0, restored.Encode("nausea"))
		assert.Equal(t, 1, restored.Encode("dizziness"))
		assert.Equal(t, -1, restored.Encode("rash"))
	})
}
