package service

import (
	"strings"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// GeographicScorer scores location consistency: phone area code against the
// stated state, and the IP verdict's proxy flag and country.
type GeographicScorer struct {
	rules GeographicRules
}

// NewGeographicScorer creates a scorer for the given rules.
func NewGeographicScorer(rules GeographicRules) *GeographicScorer {
	return &GeographicScorer{rules: rules}
}

// Score returns the pre-cap geographic sub-score and its reasons. Checks
// only fire on positive evidence: an unrecognized area code or a missing IP
// verdict contributes nothing.
func (s *GeographicScorer) Score(lead *model.Lead, verdicts port.Verdicts) (int, []string) {
	score := 0
	reasons := make([]string, 0, 2)

	state := strings.ToUpper(strings.TrimSpace(lead.State))
	if areaState := AreaCodeState(lead.Phone); areaState != "" && state != "" && areaState != state {
		score += s.rules.AreaCodeStateMismatch
		reasons = append(reasons, ReasonAreaCodeMismatch)
	}

	if v := verdicts.IP; v != nil {
		if v.Flagged {
			score += s.rules.VPNOrProxy
			reasons = append(reasons, ReasonVPNOrProxy)
		}
		if v.Country != "" && !strings.EqualFold(v.Country, s.rules.ExpectedCountry) {
			score += s.rules.ForeignIP
			reasons = append(reasons, ReasonForeignIP)
		}
	}

	return score, reasons
}
