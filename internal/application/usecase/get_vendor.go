package usecase

import (
	"context"
	"fmt"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/service"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// historyLimit caps how many recent batches come back with a vendor detail.
const historyLimit = 20

// monitorRateMin is the average fraud rate above which a vendor is worth
// watching even though no status threshold has been crossed.
const monitorRateMin = 15.0

// GetVendor is the use case for retrieving a vendor profile together with
// its recent batch history and derived trend.
type GetVendor struct {
	vendors    port.VendorRepository
	batches    port.BatchRepository
	thresholds valueobject.StatusThresholds
}

// NewGetVendor creates a new GetVendor use case.
func NewGetVendor(vendors port.VendorRepository, batches port.BatchRepository, thresholds valueobject.StatusThresholds) *GetVendor {
	return &GetVendor{vendors: vendors, batches: batches, thresholds: thresholds}
}

// Execute loads the vendor and the derived history analysis.
func (uc *GetVendor) Execute(ctx context.Context, name string) (dto.VendorDetailResponse, error) {
	vendor, err := uc.vendors.FindByName(ctx, name)
	if err != nil {
		return dto.VendorDetailResponse{}, fmt.Errorf("failed to load vendor %q: %w", name, err)
	}

	history, err := uc.batches.ListByVendor(ctx, name, historyLimit)
	if err != nil {
		return dto.VendorDetailResponse{}, fmt.Errorf("failed to load batches for vendor %q: %w", name, err)
	}

	rates := make([]float64, 0, len(history))
	recent := make([]dto.BatchResponse, 0, len(history))
	for _, batch := range history {
		rates = append(rates, batch.FraudPercentage())
		recent = append(recent, dto.FromBatch(batch, false))
	}

	return dto.VendorDetailResponse{
		VendorResponse: dto.FromVendor(vendor),
		Trend:          string(service.VendorTrend(rates)),
		Recommendation: service.VendorRecommendation(vendor.AverageFraudRate(), uc.thresholds, monitorRateMin),
		RecentBatches:  recent,
	}, nil
}
