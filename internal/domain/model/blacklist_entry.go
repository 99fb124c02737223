package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Blacklist entry types. The value column holds the normalized contact value
// for the given type.
const (
	BlacklistTypeEmail = "email"
	BlacklistTypePhone = "phone"
	BlacklistTypeIP    = "ip"
)

// BlacklistEntry records a contact value that appeared on a fraudulent lead.
// TimesDetected counts how often the value has recurred across batches.
type BlacklistEntry struct {
	ID            uuid.UUID
	EntryType     string
	Value         string
	Reason        string
	TimesDetected int
	FirstSeenAt   time.Time
	LastSeenAt    time.Time
}

// NewBlacklistEntry creates a first-detection entry for a contact value.
func NewBlacklistEntry(entryType, value, reason string) (*BlacklistEntry, error) {
	switch entryType {
	case BlacklistTypeEmail, BlacklistTypePhone, BlacklistTypeIP:
	default:
		return nil, fmt.Errorf("unknown blacklist entry type %q", entryType)
	}
	if value == "" {
		return nil, fmt.Errorf("blacklist value is required")
	}
	now := time.Now().UTC()
	return &BlacklistEntry{
		ID:            uuid.New(),
		EntryType:     entryType,
		Value:         value,
		Reason:        reason,
		TimesDetected: 1,
		FirstSeenAt:   now,
		LastSeenAt:    now,
	}, nil
}
