package analysis

import (
	"github.com/deepcare-ai/deepcare/pkg/models"
)

// Normalize deduplicates raw entity mentions and computes per-entity
// occurrence frequency. Negated and family history mentions are dropped
// first; the remainder is grouped by case-insensitive text. Each group
// yields one entity carrying the first occurrence's display fields and the
// group's size as Frequency. Output preserves first-seen order.
func Normalize(raw []models.Entity) []models.Entity {
	counts := make(map[string]int)
	order := make([]string, 0, len(raw))
	first := make(map[string]models.Entity)

	for _, entity := range raw {
		if entity.HasTrait(models.TraitNegation) ||
			entity.HasTrait(models.TraitPertainsToFamily) {
			continue
		}
		key := entity.NormalizedText()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			first[key] = entity
		}
		// Unset frequency counts as a single mention. Carrying prior
		// frequencies makes Normalize idempotent.
		frequency := entity.Frequency
		if frequency < 1 {
			frequency = 1
		}
		counts[key] += frequency
	}

	normalized := make([]models.Entity, 0, len(order))
	for _, key := range order {
		entity := first[key]
		entity.Frequency = counts[key]
		normalized = append(normalized, entity)
	}
	return normalized
}
