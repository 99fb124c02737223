package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead is one prospective-customer contact record submitted by a vendor.
// Leads are inputs to the scoring engine and are never mutated once scored.
type Lead struct {
	ID          uuid.UUID
	ExternalID  string
	Name        string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	Zip         string
	IPAddress   string
	SubmittedAt time.Time
}

// NormalizedEmail returns the email trimmed and lowercased for comparison.
func (l Lead) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(l.Email))
}

// NormalizedPhone returns the phone number reduced to digits only.
func (l Lead) NormalizedPhone() string {
	return DigitsOnly(l.Phone)
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizedName returns the name trimmed and lowercased for comparison.
func (l Lead) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// DuplicateKey returns the normalized (name, email, phone) tuple used for
// exact-duplicate detection within a batch.
func (l Lead) DuplicateKey() string {
	return l.NormalizedName() + "|" + l.NormalizedEmail() + "|" + l.NormalizedPhone()
}

// EmailDomain returns the lowercased domain part of the email, or "" when the
// address has no domain.
func (l Lead) EmailDomain() string {
	email := l.NormalizedEmail()
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return email[at+1:]
}
