package service

import (
	"github.com/agext/levenshtein"
	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// DuplicateDetector finds exact duplicates, near duplicates and repeated
// contact values within one batch. Exact and repeated checks run in O(n)
// over hash indexes; near-duplicate detection is a pairwise O(n²) scan,
// which is acceptable for batches in the low thousands.
type DuplicateDetector struct {
	rules  DuplicateRules
	params *levenshtein.Params
}

// NewDuplicateDetector creates a detector for the given rules.
func NewDuplicateDetector(rules DuplicateRules) *DuplicateDetector {
	return &DuplicateDetector{
		rules:  rules,
		params: levenshtein.NewParams(),
	}
}

// Detect runs all duplicate checks over the batch in original order. The
// first occurrence of any duplicate group is never flagged; later
// occurrences reference the earliest occurrence.
func (d *DuplicateDetector) Detect(leads []*model.Lead) map[uuid.UUID]DuplicateFlags {
	flags := make(map[uuid.UUID]DuplicateFlags, len(leads))

	firstByKey := make(map[string]uuid.UUID, len(leads))
	phoneCounts := make(map[string]int, len(leads))
	emailCounts := make(map[string]int, len(leads))

	for _, lead := range leads {
		f := DuplicateFlags{}
		if first, seen := firstByKey[lead.DuplicateKey()]; seen {
			f.IsExactDuplicate = true
			f.DuplicateOf = first
		} else {
			firstByKey[lead.DuplicateKey()] = lead.ID
		}
		flags[lead.ID] = f

		if p := lead.NormalizedPhone(); p != "" {
			phoneCounts[p]++
		}
		if e := lead.NormalizedEmail(); e != "" {
			emailCounts[e]++
		}
	}

	// Near duplicates: for each lead that is not already an exact duplicate,
	// scan earlier leads in batch order and take the first one reaching the
	// similarity threshold.
	sigs := make([]string, len(leads))
	for i, lead := range leads {
		sigs[i] = lead.NormalizedName() + "|" + lead.NormalizedEmail() + "|" + lead.NormalizedPhone()
	}
	threshold := float64(d.rules.SimilarityThreshold)
	for i, lead := range leads {
		f := flags[lead.ID]
		if !f.IsExactDuplicate {
			for j := 0; j < i; j++ {
				sim := levenshtein.Similarity(sigs[i], sigs[j], d.params) * 100
				if sim >= threshold {
					f.IsFuzzyDuplicate = true
					f.DuplicateOf = leads[j].ID
					f.Similarity = sim
					break
				}
			}
		}

		// Repeated contacts flag every occurrence, not just the threshold
		// crossing one.
		if p := lead.NormalizedPhone(); p != "" && phoneCounts[p] >= d.rules.RepeatedContactMin {
			f.RepeatedPhone = true
		}
		if e := lead.NormalizedEmail(); e != "" && emailCounts[e] >= d.rules.RepeatedContactMin {
			f.RepeatedEmail = true
		}
		flags[lead.ID] = f
	}

	return flags
}
