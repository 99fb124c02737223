package service

import (
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// Trend describes the direction of a vendor's recent fraud rates relative
// to their overall history.
type Trend string

const (
	TrendImproving    Trend = "improving"
	TrendWorsening    Trend = "worsening"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// trendWindow is the number of most recent batches compared against the
// overall average, and trendBand the percentage-point tolerance before a
// move counts as a trend.
const (
	trendWindow = 3
	trendBand   = 5.0
)

// VendorTrend compares the mean of the last three batch fraud rates against
// the overall mean. Rates must be ordered newest first. Fewer than three
// batches is not enough history to call a trend.
func VendorTrend(ratesNewestFirst []float64) Trend {
	if len(ratesNewestFirst) < trendWindow {
		return TrendInsufficient
	}

	recent := mean(ratesNewestFirst[:trendWindow])
	overall := mean(ratesNewestFirst)

	switch {
	case recent > overall+trendBand:
		return TrendWorsening
	case recent < overall-trendBand:
		return TrendImproving
	default:
		return TrendStable
	}
}

// VendorRecommendation phrases the action implied by a vendor's average
// fraud rate. The monitor band sits between the acceptable ceiling and the
// warning threshold.
func VendorRecommendation(averageFraudRate float64, t valueobject.StatusThresholds, monitorMin float64) string {
	switch {
	case averageFraudRate >= t.Blacklist:
		return "BLACKLIST VENDOR - consistently high fraud rate"
	case averageFraudRate >= t.Suspend:
		return "SUSPEND VENDOR - high fraud rate"
	case averageFraudRate >= t.Warning:
		return "WARNING - elevated fraud rate"
	case averageFraudRate >= monitorMin:
		return "MONITOR CLOSELY - above acceptable threshold"
	default:
		return "ACCEPTABLE - within normal fraud tolerance"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
