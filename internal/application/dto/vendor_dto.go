package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
)

// VendorResponse is the output DTO for a vendor profile.
type VendorResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	TotalBatches     int       `json:"total_batches"`
	TotalLeads       int       `json:"total_leads"`
	FraudulentLeads  int       `json:"fraudulent_leads"`
	AverageFraudRate float64   `json:"average_fraud_rate"`
	TotalRefunds     string    `json:"total_refunds"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VendorDetailResponse extends VendorResponse with recent history and the
// derived trend.
type VendorDetailResponse struct {
	VendorResponse
	Trend          string          `json:"trend"`
	Recommendation string          `json:"recommendation"`
	RecentBatches  []BatchResponse `json:"recent_batches"`
}

// FromVendor maps a vendor aggregate to its response DTO.
func FromVendor(v *model.VendorProfile) VendorResponse {
	return VendorResponse{
		ID:               v.ID(),
		Name:             v.Name(),
		TotalBatches:     v.TotalBatches(),
		TotalLeads:       v.TotalLeads(),
		FraudulentLeads:  v.FraudulentLeads(),
		AverageFraudRate: v.AverageFraudRate(),
		TotalRefunds:     v.TotalRefunds().String(),
		Status:           v.Status().String(),
		CreatedAt:        v.CreatedAt(),
		UpdatedAt:        v.UpdatedAt(),
	}
}
