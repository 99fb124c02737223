package service

import "strings"

// Reason strings attached to lead results. Batch fraud indicators group
// leads by these, so the wording is stable.
const (
	ReasonMissingPhone        = "Missing phone number"
	ReasonInvalidPhoneFormat  = "Invalid phone format"
	ReasonPhoneDisconnected   = "Phone number invalid or disconnected"
	ReasonPhoneVoIP           = "VoIP phone number"
	ReasonPhoneRepeated       = "Phone number repeated 3+ times"
	ReasonMissingEmail        = "Missing email address"
	ReasonInvalidEmailFormat  = "Invalid email format"
	ReasonDisposableEmail     = "Disposable email domain"
	ReasonNoMXRecord          = "Email domain has no mail server"
	ReasonEmailRepeated       = "Email repeated 3+ times"
	ReasonEmailBlacklisted    = "Email found on fraud blacklist"
	ReasonPhoneBlacklisted    = "Phone found on fraud blacklist"
	ReasonRepeatedPhoneBatch  = "Repeated phone across batch"
	ReasonRepeatedEmailBatch  = "Repeated email across batch"
	ReasonAreaCodeMismatch    = "Phone area code does not match state"
	ReasonVPNOrProxy          = "IP address is VPN or proxy"
	ReasonForeignIP           = "IP address outside expected country"
	ReasonBotPattern          = "Bot-like submission pattern"
	ReasonHighVelocity        = "Submission velocity exceeds threshold"
	ReasonOvernightSpike      = "Overnight submission spike"
	ReasonInvalidName         = "Missing or too short name"
	ReasonGibberishName       = "Invalid or gibberish name"
	ReasonNameWithDigits      = "Name contains digits"
	ReasonMissingFields       = "Missing critical fields"
)

// Prefixes of reasons that embed a per-lead reference. Indicators collapse
// them to the bare prefix so occurrences group together.
const (
	ReasonExactDuplicatePrefix = "Exact duplicate of lead"
	ReasonNearDuplicatePrefix  = "Near duplicate of lead"
)

var reasonCategories = map[string]string{
	ReasonMissingPhone:       "contact",
	ReasonInvalidPhoneFormat: "contact",
	ReasonPhoneDisconnected:  "contact",
	ReasonPhoneVoIP:          "contact",
	ReasonPhoneRepeated:      "contact",
	ReasonMissingEmail:       "contact",
	ReasonInvalidEmailFormat: "contact",
	ReasonDisposableEmail:    "contact",
	ReasonNoMXRecord:         "contact",
	ReasonEmailRepeated:      "contact",
	ReasonEmailBlacklisted:   "contact",
	ReasonPhoneBlacklisted:   "contact",

	ReasonExactDuplicatePrefix: "duplicate",
	ReasonNearDuplicatePrefix:  "duplicate",
	ReasonRepeatedPhoneBatch:   "duplicate",
	ReasonRepeatedEmailBatch:   "duplicate",

	ReasonAreaCodeMismatch: "geographic",
	ReasonVPNOrProxy:       "geographic",
	ReasonForeignIP:        "geographic",

	ReasonBotPattern:     "timing",
	ReasonHighVelocity:   "timing",
	ReasonOvernightSpike: "timing",

	ReasonInvalidName:    "quality",
	ReasonGibberishName:  "quality",
	ReasonNameWithDigits: "quality",
	ReasonMissingFields:  "quality",
}

// IndicatorName collapses a per-lead reason to its group name, stripping
// duplicate-of references so all occurrences count together.
func IndicatorName(reason string) string {
	if strings.HasPrefix(reason, ReasonExactDuplicatePrefix) {
		return ReasonExactDuplicatePrefix
	}
	if strings.HasPrefix(reason, ReasonNearDuplicatePrefix) {
		return ReasonNearDuplicatePrefix
	}
	return reason
}

// CategoryForReason maps a reason to its scoring category. Unknown reasons
// fall back to quality.
func CategoryForReason(reason string) string {
	if cat, ok := reasonCategories[IndicatorName(reason)]; ok {
		return cat
	}
	return "quality"
}
