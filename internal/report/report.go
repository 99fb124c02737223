// Package report renders a plain-text fraud analysis report for a scored
// batch, suitable for printing to a terminal or saving alongside the input
// file.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/service"
)

const (
	lineWidth = 70

	// The industry comparison baseline. Lead-gen fraud rates typically
	// land between 8 and 12 percent, so 10 is the midpoint.
	industryMidpointPct = 10.0

	topIndicators = 10
)

// Writer renders batch reports against a refund policy.
type Writer struct {
	refund service.RefundRules
}

// NewWriter creates a report writer using the given refund breakpoints.
func NewWriter(refund service.RefundRules) *Writer {
	return &Writer{refund: refund}
}

// Write renders the full text report for a scored batch.
func (rw *Writer) Write(w io.Writer, batch dto.BatchResponse) error {
	var b strings.Builder
	heavy := strings.Repeat("=", lineWidth)
	light := strings.Repeat("-", lineWidth)

	fmt.Fprintln(&b, heavy)
	fmt.Fprintln(&b, "LEAD VALIDATION - FRAUD ANALYSIS REPORT")
	fmt.Fprintln(&b, heavy)
	fmt.Fprintf(&b, "Analysis Date: %s\n", batch.AnalyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Vendor: %s\n", batch.VendorName)
	fmt.Fprintf(&b, "Batch: %s\n", batch.BatchIdentifier)
	if batch.InputFilename != "" {
		fmt.Fprintf(&b, "Input File: %s\n", batch.InputFilename)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "BATCH STATISTICS:")
	fmt.Fprintln(&b, light)
	fmt.Fprintf(&b, "Total Leads Analyzed: %d\n", batch.TotalLeads)
	fmt.Fprintf(&b, "Fraudulent Leads: %d (%.1f%%)\n", batch.FraudulentLeads, batch.FraudPercentage)
	fmt.Fprintf(&b, "Valid Leads: %d (%.1f%%)\n", batch.ValidLeads, 100-batch.FraudPercentage)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "FRAUD BREAKDOWN BY CATEGORY:")
	fmt.Fprintln(&b, light)
	fmt.Fprintf(&b, "Contact Validation Issues: %.1f points (avg)\n", batch.Averages.Contact)
	fmt.Fprintf(&b, "Duplicate Detection: %.1f points (avg)\n", batch.Averages.Duplicate)
	fmt.Fprintf(&b, "Geographic Issues: %.1f points (avg)\n", batch.Averages.Geographic)
	fmt.Fprintf(&b, "Timing Anomalies: %.1f points (avg)\n", batch.Averages.Timing)
	fmt.Fprintf(&b, "Data Quality Issues: %.1f points (avg)\n", batch.Averages.Quality)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "TOP FRAUD INDICATORS:")
	fmt.Fprintln(&b, light)
	indicators := make([]dto.IndicatorResponse, len(batch.Indicators))
	copy(indicators, batch.Indicators)
	sort.SliceStable(indicators, func(i, j int) bool {
		return indicators[i].AffectedLeads > indicators[j].AffectedLeads
	})
	if len(indicators) > topIndicators {
		indicators = indicators[:topIndicators]
	}
	if len(indicators) == 0 {
		fmt.Fprintln(&b, "None detected.")
	}
	for i, ind := range indicators {
		fmt.Fprintf(&b, "%d. %s: %d leads (%.1f%%)\n", i+1, ind.Name, ind.AffectedLeads, ind.Percentage)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "REFUND DETERMINATION:")
	fmt.Fprintln(&b, heavy)
	fmt.Fprintln(&b, "REFUND THRESHOLD POLICY:")
	fmt.Fprintf(&b, "  >= %.0f%% fraud = Full refund (100%%)\n", rw.refund.FullMin)
	fmt.Fprintf(&b, "  %.0f-%.0f%% fraud = Partial refund (pro-rata)\n", rw.refund.PartialMin, rw.refund.FullMin)
	fmt.Fprintf(&b, "  < %.0f%% fraud = No refund (acceptable tolerance)\n", rw.refund.PartialMin)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "BATCH FRAUD RATE: %.1f%%\n", batch.FraudPercentage)
	fmt.Fprintf(&b, "REFUND STATUS: %s\n", strings.ToUpper(batch.RefundStatus))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "FINANCIAL IMPACT:")
	fmt.Fprintf(&b, "  Cost Per Lead: $%s\n", batch.CostPerLead)
	fmt.Fprintf(&b, "  Batch Cost: $%s\n", batch.TotalCost)
	fmt.Fprintf(&b, "  Refund Amount: $%s\n", batch.RefundAmount)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "INDUSTRY COMPARISON:")
	fmt.Fprintln(&b, light)
	fmt.Fprintln(&b, "Industry Standard Fraud Rate: 8-12%")
	fmt.Fprintf(&b, "This Batch Fraud Rate: %.1f%%\n", batch.FraudPercentage)
	deviation := batch.FraudPercentage - industryMidpointPct
	if deviation > 0 {
		fmt.Fprintf(&b, "Deviation: %.1f%% ABOVE industry standard\n", deviation)
	} else {
		fmt.Fprintf(&b, "Deviation: %.1f%% below industry standard\n", -deviation)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "CONCLUSION:")
	fmt.Fprintln(&b, heavy)
	switch {
	case batch.FraudPercentage >= rw.refund.FullMin:
		fmt.Fprintln(&b, "This batch contains an UNACCEPTABLE level of fraudulent leads.")
		fmt.Fprintln(&b, "RECOMMENDATION: Full refund is JUSTIFIED based on fraud threshold policy.")
	case batch.FraudPercentage >= rw.refund.PartialMin:
		fmt.Fprintln(&b, "This batch contains a MARGINAL level of fraudulent leads.")
		fmt.Fprintln(&b, "RECOMMENDATION: Partial refund is justified proportional to fraud rate.")
	default:
		fmt.Fprintln(&b, "This batch falls within ACCEPTABLE fraud tolerance.")
		fmt.Fprintln(&b, "RECOMMENDATION: No refund required, but monitor vendor quality.")
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, heavy)
	fmt.Fprintln(&b, "END OF REPORT")
	fmt.Fprintln(&b, heavy)

	_, err := io.WriteString(w, b.String())
	return err
}
