package port

import "context"

// Verdict is the outcome of one external validation check. A nil *Verdict
// means the check was not performed and the signal stays unknown, which is
// not the same as valid.
type Verdict struct {
	// Valid reports whether the provider considers the value legitimate.
	Valid bool

	// Flagged reports a provider-specific risk signal beyond plain
	// invalidity, such as a VPN exit node or an abuse-listed address.
	Flagged bool

	// Country is the ISO country code the provider resolved, when it
	// resolves one. Empty when unknown.
	Country string

	// Detail is a short human-readable note carried into lead reasons.
	Detail string
}

// PhoneValidator checks phone numbers against an external source, such as a
// carrier lookup service.
type PhoneValidator interface {
	ValidatePhone(ctx context.Context, phone string) (*Verdict, error)
}

// EmailValidator checks email deliverability, typically via MX records.
type EmailValidator interface {
	ValidateEmail(ctx context.Context, email string) (*Verdict, error)
}

// IPValidator resolves reputation and geolocation for an IP address.
type IPValidator interface {
	ValidateIP(ctx context.Context, ip string) (*Verdict, error)
}

// Verdicts bundles the per-lead provider outcomes consumed by the scorers.
// Any field may be nil when the corresponding validator is absent or failed.
type Verdicts struct {
	Phone *Verdict
	Email *Verdict
	IP    *Verdict
}
