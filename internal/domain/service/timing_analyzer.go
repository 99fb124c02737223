package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// TimingAnalyzer detects batch-level submission patterns. Leads without a
// submission timestamp are skipped; they can never carry timing points.
type TimingAnalyzer struct {
	rules TimingRules
}

// NewTimingAnalyzer creates an analyzer for the given rules.
func NewTimingAnalyzer(rules TimingRules) *TimingAnalyzer {
	return &TimingAnalyzer{rules: rules}
}

// Analyze runs the bot-pattern, velocity and overnight checks over the batch.
func (a *TimingAnalyzer) Analyze(leads []*model.Lead) map[uuid.UUID]TimingFlags {
	flags := make(map[uuid.UUID]TimingFlags, len(leads))
	for _, lead := range leads {
		flags[lead.ID] = TimingFlags{}
	}

	timed := make([]*model.Lead, 0, len(leads))
	for _, lead := range leads {
		if !lead.SubmittedAt.IsZero() {
			timed = append(timed, lead)
		}
	}
	if len(timed) == 0 {
		return flags
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].SubmittedAt.Before(timed[j].SubmittedAt)
	})

	a.detectBotPattern(timed, flags)
	a.detectVelocity(timed, flags)
	a.detectOvernight(timed, len(leads), flags)
	return flags
}

// detectBotPattern flags every timed lead when inter-arrival times are
// suspiciously uniform across a large enough batch.
func (a *TimingAnalyzer) detectBotPattern(sorted []*model.Lead, flags map[uuid.UUID]TimingFlags) {
	if len(sorted) < a.rules.BotMinBatchSize {
		return
	}

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].SubmittedAt.Sub(sorted[i-1].SubmittedAt).Seconds())
	}

	if stdDev(gaps) >= a.rules.BotStdDevSecs {
		return
	}
	for _, lead := range sorted {
		f := flags[lead.ID]
		f.BotPattern = true
		flags[lead.ID] = f
	}
}

// detectVelocity flags leads in any clock-hour bucket whose count exceeds
// the configured per-hour threshold.
func (a *TimingAnalyzer) detectVelocity(sorted []*model.Lead, flags map[uuid.UUID]TimingFlags) {
	buckets := make(map[time.Time][]*model.Lead)
	for _, lead := range sorted {
		hour := lead.SubmittedAt.Truncate(time.Hour)
		buckets[hour] = append(buckets[hour], lead)
	}
	for _, leads := range buckets {
		if len(leads) <= a.rules.VelocityPerHour {
			continue
		}
		for _, lead := range leads {
			f := flags[lead.ID]
			f.HighVelocity = true
			flags[lead.ID] = f
		}
	}
}

// detectOvernight flags leads submitted inside the overnight window when the
// window holds enough of the batch, by absolute count or by fraction.
func (a *TimingAnalyzer) detectOvernight(sorted []*model.Lead, batchSize int, flags map[uuid.UUID]TimingFlags) {
	overnight := make([]*model.Lead, 0)
	for _, lead := range sorted {
		h := lead.SubmittedAt.Hour()
		if h >= a.rules.OvernightStartHour && h < a.rules.OvernightEndHour {
			overnight = append(overnight, lead)
		}
	}
	if len(overnight) == 0 {
		return
	}

	fraction := float64(len(overnight)) / float64(batchSize)
	if len(overnight) < a.rules.OvernightMinLeads && fraction < a.rules.OvernightMinFraction {
		return
	}
	for _, lead := range overnight {
		f := flags[lead.ID]
		f.OvernightSpike = true
		flags[lead.ID] = f
	}
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
