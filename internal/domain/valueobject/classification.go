package valueobject

import "fmt"

// Classification is an immutable value object representing the fraud
// classification of a single lead.
type Classification struct {
	value string
}

var (
	ClassificationValid      = Classification{value: "VALID"}
	ClassificationSuspicious = Classification{value: "SUSPICIOUS"}
	ClassificationFraudulent = Classification{value: "FRAUDULENT"}
)

// ClassificationFromString reconstructs a Classification from its string representation.
func ClassificationFromString(s string) (Classification, error) {
	switch s {
	case "VALID":
		return ClassificationValid, nil
	case "SUSPICIOUS":
		return ClassificationSuspicious, nil
	case "FRAUDULENT":
		return ClassificationFraudulent, nil
	default:
		return Classification{}, fmt.Errorf("invalid classification: %s", s)
	}
}

// ClassificationFromScore derives the Classification from a fraud score
// (0-100) using the given breakpoints. A score at or above fraudulentMin is
// FRAUDULENT, at or above suspiciousMin is SUSPICIOUS, anything below is VALID.
func ClassificationFromScore(score, suspiciousMin, fraudulentMin int) Classification {
	switch {
	case score >= fraudulentMin:
		return ClassificationFraudulent
	case score >= suspiciousMin:
		return ClassificationSuspicious
	default:
		return ClassificationValid
	}
}

// String returns the string representation.
func (c Classification) String() string {
	return c.value
}

// IsZero returns true if the Classification has not been set.
func (c Classification) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Classification.
func (c Classification) Equal(other Classification) bool {
	return c.value == other.value
}

// IsFraudulent returns true if the classification is FRAUDULENT.
// Only FRAUDULENT leads count toward batch refund math; SUSPICIOUS is
// informational.
func (c Classification) IsFraudulent() bool {
	return c.value == "FRAUDULENT"
}
