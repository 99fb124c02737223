package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// ScoreBatchRequest is the input DTO for the ScoreBatch use case. Leads are
// already parsed; the ingestion layer owns file formats.
type ScoreBatchRequest struct {
	VendorName      string          `json:"vendor_name"`
	BatchIdentifier string          `json:"batch_identifier"`
	InputFilename   string          `json:"input_filename"`
	CostPerLead     decimal.Decimal `json:"cost_per_lead"`
	Leads           []*model.Lead   `json:"-"`
}

// LeadResultResponse is the per-lead scoring outcome.
type LeadResultResponse struct {
	ID             uuid.UUID `json:"id"`
	ExternalID     string    `json:"external_id,omitempty"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	FraudScore     int       `json:"fraud_score"`
	Classification string    `json:"classification"`
	Reasons        []string  `json:"reasons"`
	Contact        int       `json:"contact_score"`
	Duplicate      int       `json:"duplicate_score"`
	Geographic     int       `json:"geographic_score"`
	Timing         int       `json:"timing_score"`
	Quality        int       `json:"quality_score"`
	ScoredAt       time.Time `json:"scored_at"`
}

// IndicatorResponse is one batch-level fraud indicator.
type IndicatorResponse struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	AffectedLeads int     `json:"affected_leads"`
	Percentage    float64 `json:"percentage"`
}

// AveragesResponse holds batch mean scores per category.
type AveragesResponse struct {
	FraudScore float64 `json:"fraud_score"`
	Contact    float64 `json:"contact"`
	Duplicate  float64 `json:"duplicate"`
	Geographic float64 `json:"geographic"`
	Timing     float64 `json:"timing"`
	Quality    float64 `json:"quality"`
}

// BatchResponse is the output DTO for a scored batch.
type BatchResponse struct {
	ID              uuid.UUID            `json:"id"`
	BatchIdentifier string               `json:"batch_identifier"`
	VendorName      string               `json:"vendor_name"`
	InputFilename   string               `json:"input_filename,omitempty"`
	TotalLeads      int                  `json:"total_leads"`
	ValidLeads      int                  `json:"valid_leads"`
	FraudulentLeads int                  `json:"fraudulent_leads"`
	FraudPercentage float64              `json:"fraud_percentage"`
	RefundStatus    string               `json:"refund_status"`
	RefundAmount    string               `json:"refund_amount"`
	CostPerLead     string               `json:"cost_per_lead"`
	TotalCost       string               `json:"total_cost"`
	Averages        AveragesResponse     `json:"averages"`
	Indicators      []IndicatorResponse  `json:"indicators"`
	Results         []LeadResultResponse `json:"results,omitempty"`
	AnalyzedAt      time.Time            `json:"analyzed_at"`
}

// FromBatch maps a batch aggregate to its response DTO. Per-lead results are
// included only when withResults is set, since list endpoints do not need
// them.
func FromBatch(b *model.BatchResult, withResults bool) BatchResponse {
	avg := b.Averages()
	resp := BatchResponse{
		ID:              b.ID(),
		BatchIdentifier: b.Identifier(),
		VendorName:      b.VendorName(),
		InputFilename:   b.InputFilename(),
		TotalLeads:      b.Total(),
		ValidLeads:      b.ValidCount(),
		FraudulentLeads: b.FraudulentCount(),
		FraudPercentage: b.FraudPercentage(),
		RefundStatus:    b.RefundStatus().String(),
		RefundAmount:    b.RefundAmount().String(),
		CostPerLead:     b.CostPerLead().String(),
		TotalCost:       b.TotalCost().String(),
		Averages: AveragesResponse{
			FraudScore: avg.FraudScore,
			Contact:    avg.Contact,
			Duplicate:  avg.Duplicate,
			Geographic: avg.Geographic,
			Timing:     avg.Timing,
			Quality:    avg.Quality,
		},
		AnalyzedAt: b.AnalyzedAt(),
	}
	for _, ind := range b.Indicators() {
		resp.Indicators = append(resp.Indicators, IndicatorResponse{
			Name:          ind.Name,
			Category:      ind.Category,
			AffectedLeads: ind.AffectedLeads,
			Percentage:    ind.Percentage,
		})
	}
	if withResults {
		for _, r := range b.Results() {
			resp.Results = append(resp.Results, FromLeadResult(r))
		}
	}
	return resp
}

// FromLeadResult maps a lead result to its response DTO.
func FromLeadResult(r *model.LeadFraudResult) LeadResultResponse {
	lead := r.Lead()
	breakdown := r.Breakdown()
	return LeadResultResponse{
		ID:             r.ID(),
		ExternalID:     lead.ExternalID,
		Name:           lead.Name,
		Email:          lead.Email,
		Phone:          lead.Phone,
		FraudScore:     r.FraudScore(),
		Classification: r.Classification().String(),
		Reasons:        r.Reasons(),
		Contact:        breakdown.Contact,
		Duplicate:      breakdown.Duplicate,
		Geographic:     breakdown.Geographic,
		Timing:         breakdown.Timing,
		Quality:        breakdown.Quality,
		ScoredAt:       r.ScoredAt(),
	}
}
