package service

import "github.com/google/uuid"

// DuplicateFlags is the duplicate detector's verdict for one lead relative
// to the whole batch.
type DuplicateFlags struct {
	IsExactDuplicate bool
	IsFuzzyDuplicate bool

	// DuplicateOf references the earliest matching lead when either flag is
	// set; uuid.Nil otherwise.
	DuplicateOf uuid.UUID

	// Similarity is the 0..100 similarity against DuplicateOf, meaningful
	// only for fuzzy duplicates.
	Similarity float64

	RepeatedPhone bool
	RepeatedEmail bool
}

// TimingFlags marks which batch-level timing patterns a lead falls into.
type TimingFlags struct {
	BotPattern     bool
	HighVelocity   bool
	OvernightSpike bool
}

// BatchContext carries the batch-wide artifacts computed before per-lead
// scoring starts. It is read-only during scoring, so concurrent per-lead
// scorers can share it without locking.
type BatchContext struct {
	Duplicates map[uuid.UUID]DuplicateFlags
	Timing     map[uuid.UUID]TimingFlags

	// BlacklistedEmails and BlacklistedPhones hold normalized contact values
	// already on the fraud blacklist.
	BlacklistedEmails map[string]bool
	BlacklistedPhones map[string]bool
}

// NewBatchContext returns an empty context with all maps initialized.
func NewBatchContext() *BatchContext {
	return &BatchContext{
		Duplicates:        make(map[uuid.UUID]DuplicateFlags),
		Timing:            make(map[uuid.UUID]TimingFlags),
		BlacklistedEmails: make(map[string]bool),
		BlacklistedPhones: make(map[string]bool),
	}
}
