package valueobject

import "fmt"

// VendorStatus is an immutable value object representing the standing of a
// vendor, derived from their average fraud rate. It is never stored
// independently of the rate it was derived from.
type VendorStatus struct {
	value string
}

var (
	VendorActive      = VendorStatus{value: "active"}
	VendorWarning     = VendorStatus{value: "warning"}
	VendorSuspended   = VendorStatus{value: "suspended"}
	VendorBlacklisted = VendorStatus{value: "blacklisted"}
)

// StatusThresholds holds the average-fraud-rate boundaries for vendor status
// derivation.
type StatusThresholds struct {
	Warning   float64
	Suspend   float64
	Blacklist float64
}

// DefaultStatusThresholds returns the standard 20/30/40 boundaries.
func DefaultStatusThresholds() StatusThresholds {
	return StatusThresholds{Warning: 20, Suspend: 30, Blacklist: 40}
}

// VendorStatusFromString reconstructs a VendorStatus from its string representation.
func VendorStatusFromString(s string) (VendorStatus, error) {
	switch s {
	case "active":
		return VendorActive, nil
	case "warning":
		return VendorWarning, nil
	case "suspended":
		return VendorSuspended, nil
	case "blacklisted":
		return VendorBlacklisted, nil
	default:
		return VendorStatus{}, fmt.Errorf("invalid vendor status: %s", s)
	}
}

// VendorStatusFromRate derives the VendorStatus from an average fraud rate.
func VendorStatusFromRate(averageFraudRate float64, t StatusThresholds) VendorStatus {
	switch {
	case averageFraudRate >= t.Blacklist:
		return VendorBlacklisted
	case averageFraudRate >= t.Suspend:
		return VendorSuspended
	case averageFraudRate >= t.Warning:
		return VendorWarning
	default:
		return VendorActive
	}
}

// String returns the string representation.
func (v VendorStatus) String() string {
	return v.value
}

// IsZero returns true if the VendorStatus has not been set.
func (v VendorStatus) IsZero() bool {
	return v.value == ""
}

// Equal checks equality with another VendorStatus.
func (v VendorStatus) Equal(other VendorStatus) bool {
	return v.value == other.value
}
