package service

import (
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// ContactRules holds point values for the contact category.
type ContactRules struct {
	Cap                 int
	MissingPhone        int
	InvalidPhoneFormat  int
	PhoneVerdictInvalid int
	PhoneVoIP           int
	PhoneRepeated       int
	MissingEmail        int
	InvalidEmailFormat  int
	DisposableEmail     int
	NoMXRecord          int
	EmailRepeated       int
	BlacklistedContact  int
}

// DuplicateRules holds point values and thresholds for the duplicate category.
type DuplicateRules struct {
	Cap                 int
	ExactDuplicate      int
	NearDuplicate       int
	RepeatedPhone       int
	RepeatedEmail       int
	SimilarityThreshold int
	RepeatedContactMin  int
}

// GeographicRules holds point values for the geographic category.
type GeographicRules struct {
	Cap                   int
	AreaCodeStateMismatch int
	VPNOrProxy            int
	ForeignIP             int
	ExpectedCountry       string
}

// TimingRules holds point values and batch-pattern thresholds for the timing
// category. The overnight window is [StartHour, EndHour) in the lead's local
// submission time.
type TimingRules struct {
	Cap                  int
	BotPattern           int
	HighVelocity         int
	OvernightSpike       int
	BotStdDevSecs        float64
	BotMinBatchSize      int
	VelocityPerHour      int
	OvernightStartHour   int
	OvernightEndHour     int
	OvernightMinLeads    int
	OvernightMinFraction float64
}

// QualityRules holds point values for the quality category. GibberishNames
// are matched case-insensitively as substrings of the lead name.
type QualityRules struct {
	Cap            int
	InvalidName    int
	GibberishName  int
	NameWithDigits int
	MissingFields  int
	GibberishNames []string
}

// ClassificationRules holds the lead classification breakpoints.
type ClassificationRules struct {
	SuspiciousMin int
	FraudulentMin int
}

// RefundRules holds the batch fraud-percentage refund breakpoints.
type RefundRules struct {
	PartialMin float64
	FullMin    float64
}

// ScoringRules is the complete, immutable scoring configuration. It is
// validated once at startup and passed into the scorers by value.
type ScoringRules struct {
	Contact        ContactRules
	Duplicate      DuplicateRules
	Geographic     GeographicRules
	Timing         TimingRules
	Quality        QualityRules
	Classification ClassificationRules
	Refund         RefundRules
	Vendor         valueobject.StatusThresholds
}

// DefaultRules returns the standard scoring configuration. Category caps sum
// to 100, which keeps the total fraud score bounded.
func DefaultRules() ScoringRules {
	return ScoringRules{
		Contact: ContactRules{
			Cap:                 40,
			MissingPhone:        10,
			InvalidPhoneFormat:  10,
			PhoneVerdictInvalid: 10,
			PhoneVoIP:           8,
			PhoneRepeated:       10,
			MissingEmail:        10,
			InvalidEmailFormat:  10,
			DisposableEmail:     10,
			NoMXRecord:          10,
			EmailRepeated:       10,
			BlacklistedContact:  15,
		},
		Duplicate: DuplicateRules{
			Cap:                 25,
			ExactDuplicate:      15,
			NearDuplicate:       10,
			RepeatedPhone:       12,
			RepeatedEmail:       12,
			SimilarityThreshold: 85,
			RepeatedContactMin:  3,
		},
		Geographic: GeographicRules{
			Cap:                   15,
			AreaCodeStateMismatch: 8,
			VPNOrProxy:            10,
			ForeignIP:             12,
			ExpectedCountry:       "US",
		},
		Timing: TimingRules{
			Cap:                  10,
			BotPattern:           10,
			HighVelocity:         10,
			OvernightSpike:       8,
			BotStdDevSecs:        5,
			BotMinBatchSize:      5,
			VelocityPerHour:      100,
			OvernightStartHour:   2,
			OvernightEndHour:     6,
			OvernightMinLeads:    20,
			OvernightMinFraction: 0.10,
		},
		Quality: QualityRules{
			Cap:            10,
			InvalidName:    10,
			GibberishName:  10,
			NameWithDigits: 8,
			MissingFields:  10,
			GibberishNames: []string{
				"asdfgh", "qwerty", "zxcvbn", "test test", "test",
				"fake", "xxx", "aaa", "zzz", "nnn", "111", "123", "abc",
			},
		},
		Classification: ClassificationRules{
			SuspiciousMin: 25,
			FraudulentMin: 50,
		},
		Refund: RefundRules{
			PartialMin: 15,
			FullMin:    25,
		},
		Vendor: valueobject.DefaultStatusThresholds(),
	}
}

// Validate checks the configuration for contradictions. It returns a
// ConfigError describing the first problem found; callers must fail fast
// rather than clamp.
func (r ScoringRules) Validate() error {
	caps := []struct {
		name string
		cap  int
	}{
		{"contact", r.Contact.Cap},
		{"duplicate", r.Duplicate.Cap},
		{"geographic", r.Geographic.Cap},
		{"timing", r.Timing.Cap},
		{"quality", r.Quality.Cap},
	}
	capSum := 0
	for _, c := range caps {
		if c.cap <= 0 {
			return errs.NewConfigError("%s cap must be positive, got %d", c.name, c.cap)
		}
		capSum += c.cap
	}
	if capSum > 100 {
		return errs.NewConfigError("category caps sum to %d, must not exceed 100", capSum)
	}

	points := []struct {
		name  string
		value int
	}{
		{"contact.missing_phone", r.Contact.MissingPhone},
		{"contact.invalid_phone_format", r.Contact.InvalidPhoneFormat},
		{"contact.phone_verdict_invalid", r.Contact.PhoneVerdictInvalid},
		{"contact.phone_voip", r.Contact.PhoneVoIP},
		{"contact.phone_repeated", r.Contact.PhoneRepeated},
		{"contact.missing_email", r.Contact.MissingEmail},
		{"contact.invalid_email_format", r.Contact.InvalidEmailFormat},
		{"contact.disposable_email", r.Contact.DisposableEmail},
		{"contact.no_mx_record", r.Contact.NoMXRecord},
		{"contact.email_repeated", r.Contact.EmailRepeated},
		{"contact.blacklisted_contact", r.Contact.BlacklistedContact},
		{"duplicate.exact", r.Duplicate.ExactDuplicate},
		{"duplicate.near", r.Duplicate.NearDuplicate},
		{"duplicate.repeated_phone", r.Duplicate.RepeatedPhone},
		{"duplicate.repeated_email", r.Duplicate.RepeatedEmail},
		{"geographic.area_code_mismatch", r.Geographic.AreaCodeStateMismatch},
		{"geographic.vpn_or_proxy", r.Geographic.VPNOrProxy},
		{"geographic.foreign_ip", r.Geographic.ForeignIP},
		{"timing.bot_pattern", r.Timing.BotPattern},
		{"timing.high_velocity", r.Timing.HighVelocity},
		{"timing.overnight_spike", r.Timing.OvernightSpike},
		{"quality.invalid_name", r.Quality.InvalidName},
		{"quality.gibberish_name", r.Quality.GibberishName},
		{"quality.name_with_digits", r.Quality.NameWithDigits},
		{"quality.missing_fields", r.Quality.MissingFields},
	}
	for _, p := range points {
		if p.value < 0 {
			return errs.NewConfigError("%s must not be negative, got %d", p.name, p.value)
		}
	}

	if r.Duplicate.SimilarityThreshold < 0 || r.Duplicate.SimilarityThreshold > 100 {
		return errs.NewConfigError("similarity threshold must be in [0,100], got %d", r.Duplicate.SimilarityThreshold)
	}
	if r.Duplicate.RepeatedContactMin < 2 {
		return errs.NewConfigError("repeated contact threshold must be at least 2, got %d", r.Duplicate.RepeatedContactMin)
	}
	if r.Geographic.ExpectedCountry == "" {
		return errs.NewConfigError("expected country must be set")
	}
	if r.Timing.BotStdDevSecs < 0 {
		return errs.NewConfigError("bot stddev threshold must not be negative, got %v", r.Timing.BotStdDevSecs)
	}
	if r.Timing.BotMinBatchSize < 2 {
		return errs.NewConfigError("bot minimum batch size must be at least 2, got %d", r.Timing.BotMinBatchSize)
	}
	if r.Timing.VelocityPerHour <= 0 {
		return errs.NewConfigError("velocity threshold must be positive, got %d", r.Timing.VelocityPerHour)
	}
	if r.Timing.OvernightStartHour < 0 || r.Timing.OvernightStartHour > 23 ||
		r.Timing.OvernightEndHour < 0 || r.Timing.OvernightEndHour > 24 ||
		r.Timing.OvernightStartHour >= r.Timing.OvernightEndHour {
		return errs.NewConfigError("overnight window [%d,%d) is invalid",
			r.Timing.OvernightStartHour, r.Timing.OvernightEndHour)
	}
	if r.Timing.OvernightMinFraction < 0 || r.Timing.OvernightMinFraction > 1 {
		return errs.NewConfigError("overnight fraction must be in [0,1], got %v", r.Timing.OvernightMinFraction)
	}

	if r.Classification.SuspiciousMin <= 0 || r.Classification.FraudulentMin > 100 ||
		r.Classification.SuspiciousMin >= r.Classification.FraudulentMin {
		return errs.NewConfigError("classification thresholds suspicious=%d fraudulent=%d are invalid",
			r.Classification.SuspiciousMin, r.Classification.FraudulentMin)
	}
	if r.Refund.PartialMin < 0 || r.Refund.FullMin > 100 || r.Refund.PartialMin >= r.Refund.FullMin {
		return errs.NewConfigError("refund thresholds partial=%v full=%v are invalid",
			r.Refund.PartialMin, r.Refund.FullMin)
	}
	if r.Vendor.Warning <= 0 || r.Vendor.Warning >= r.Vendor.Suspend || r.Vendor.Suspend >= r.Vendor.Blacklist {
		return errs.NewConfigError("vendor status thresholds warning=%v suspend=%v blacklist=%v must be strictly increasing",
			r.Vendor.Warning, r.Vendor.Suspend, r.Vendor.Blacklist)
	}
	return nil
}
