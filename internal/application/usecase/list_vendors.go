package usecase

import (
	"context"
	"fmt"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// ListVendors is the use case for listing every known vendor profile.
type ListVendors struct {
	vendors port.VendorRepository
}

// NewListVendors creates a new ListVendors use case.
func NewListVendors(vendors port.VendorRepository) *ListVendors {
	return &ListVendors{vendors: vendors}
}

// Execute returns all vendors.
func (uc *ListVendors) Execute(ctx context.Context) ([]dto.VendorResponse, error) {
	vendors, err := uc.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	out := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, dto.FromVendor(v))
	}
	return out, nil
}
