package validation

import (
	"context"

	"github.com/nyaruka/phonenumbers"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// LocalPhoneValidator validates phone numbers against libphonenumber metadata
// without calling any external service. It cannot detect disconnected lines
// but it does catch impossible numbers and VoIP ranges.
type LocalPhoneValidator struct {
	defaultRegion string
}

// NewLocalPhoneValidator creates a validator that parses bare national
// numbers in the given region, such as "US".
func NewLocalPhoneValidator(defaultRegion string) *LocalPhoneValidator {
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	return &LocalPhoneValidator{defaultRegion: defaultRegion}
}

// ValidatePhone parses and checks the number. Unparseable numbers yield an
// invalid verdict rather than an error since that is a data problem, not a
// provider failure.
func (v *LocalPhoneValidator) ValidatePhone(_ context.Context, phone string) (*port.Verdict, error) {
	num, err := phonenumbers.Parse(phone, v.defaultRegion)
	if err != nil {
		return &port.Verdict{Valid: false, Detail: "unparseable number"}, nil
	}
	if !phonenumbers.IsValidNumber(num) {
		return &port.Verdict{Valid: false, Detail: "not a valid number"}, nil
	}

	verdict := &port.Verdict{
		Valid:   true,
		Country: phonenumbers.GetRegionCodeForNumber(num),
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.VOIP:
		verdict.Flagged = true
		verdict.Detail = "voip number"
	}
	return verdict, nil
}
