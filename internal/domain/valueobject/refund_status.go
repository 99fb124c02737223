package valueobject

import "fmt"

// RefundStatus is an immutable value object representing the refund outcome
// for a batch.
type RefundStatus struct {
	value string
}

var (
	RefundFull    = RefundStatus{value: "FULL"}
	RefundPartial = RefundStatus{value: "PARTIAL"}
	RefundNone    = RefundStatus{value: "NONE"}
)

// RefundStatusFromString reconstructs a RefundStatus from its string representation.
func RefundStatusFromString(s string) (RefundStatus, error) {
	switch s {
	case "FULL":
		return RefundFull, nil
	case "PARTIAL":
		return RefundPartial, nil
	case "NONE":
		return RefundNone, nil
	default:
		return RefundStatus{}, fmt.Errorf("invalid refund status: %s", s)
	}
}

// RefundStatusFromPercentage derives the RefundStatus from a batch fraud
// percentage using the given thresholds. At or above fullMin the batch earns
// a full refund, at or above partialMin a pro-rata partial refund, below
// partialMin no refund.
func RefundStatusFromPercentage(fraudPercentage, partialMin, fullMin float64) RefundStatus {
	switch {
	case fraudPercentage >= fullMin:
		return RefundFull
	case fraudPercentage >= partialMin:
		return RefundPartial
	default:
		return RefundNone
	}
}

// String returns the string representation.
func (r RefundStatus) String() string {
	return r.value
}

// IsZero returns true if the RefundStatus has not been set.
func (r RefundStatus) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RefundStatus.
func (r RefundStatus) Equal(other RefundStatus) bool {
	return r.value == other.value
}
