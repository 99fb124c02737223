package service

import (
	"regexp"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

var emailFormatRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidPhoneFormat reports whether the phone number has a plausible US
// format: 10 digits, or 11 with a leading country code.
func ValidPhoneFormat(phone string) bool {
	digits := model.DigitsOnly(phone)
	return len(digits) == 10 || len(digits) == 11
}

// ValidEmailFormat reports whether the address passes a basic syntax check.
func ValidEmailFormat(email string) bool {
	return emailFormatRe.MatchString(email)
}

// ContactScorer scores the contact category: phone and email presence,
// format, provider verdicts, batch repetition and blacklist hits. Rules are
// additive; the caller caps the sum.
type ContactScorer struct {
	rules ContactRules
}

// NewContactScorer creates a scorer for the given rules.
func NewContactScorer(rules ContactRules) *ContactScorer {
	return &ContactScorer{rules: rules}
}

// Score returns the pre-cap contact sub-score and its reasons. A nil verdict
// means the channel was not validated and contributes nothing, which is not
// the same as passing.
func (s *ContactScorer) Score(lead *model.Lead, verdicts port.Verdicts, flags DuplicateFlags, ctx *BatchContext) (int, []string) {
	score := 0
	reasons := make([]string, 0, 4)
	add := func(points int, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	if lead.Phone == "" {
		add(s.rules.MissingPhone, ReasonMissingPhone)
	} else {
		if !ValidPhoneFormat(lead.Phone) {
			add(s.rules.InvalidPhoneFormat, ReasonInvalidPhoneFormat)
		}
		if v := verdicts.Phone; v != nil {
			if !v.Valid {
				add(s.rules.PhoneVerdictInvalid, ReasonPhoneDisconnected)
			}
			if v.Flagged {
				add(s.rules.PhoneVoIP, ReasonPhoneVoIP)
			}
		}
		if ctx != nil && ctx.BlacklistedPhones[lead.NormalizedPhone()] {
			add(s.rules.BlacklistedContact, ReasonPhoneBlacklisted)
		}
	}
	if flags.RepeatedPhone {
		add(s.rules.PhoneRepeated, ReasonPhoneRepeated)
	}

	if lead.Email == "" {
		add(s.rules.MissingEmail, ReasonMissingEmail)
	} else {
		if !ValidEmailFormat(lead.Email) {
			add(s.rules.InvalidEmailFormat, ReasonInvalidEmailFormat)
		}
		if v := verdicts.Email; v != nil {
			if v.Flagged {
				add(s.rules.DisposableEmail, ReasonDisposableEmail)
			}
			if !v.Valid && !v.Flagged {
				add(s.rules.NoMXRecord, ReasonNoMXRecord)
			}
		}
		if ctx != nil && ctx.BlacklistedEmails[lead.NormalizedEmail()] {
			add(s.rules.BlacklistedContact, ReasonEmailBlacklisted)
		}
	}
	if flags.RepeatedEmail {
		add(s.rules.EmailRepeated, ReasonEmailRepeated)
	}

	return score, reasons
}
