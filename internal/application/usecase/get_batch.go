package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// GetBatch is the use case for retrieving one analyzed batch with its
// per-lead results.
type GetBatch struct {
	batches port.BatchRepository
}

// NewGetBatch creates a new GetBatch use case.
func NewGetBatch(batches port.BatchRepository) *GetBatch {
	return &GetBatch{batches: batches}
}

// ByID loads a batch by its internal ID.
func (uc *GetBatch) ByID(ctx context.Context, id uuid.UUID) (dto.BatchResponse, error) {
	batch, err := uc.batches.FindByID(ctx, id)
	if err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to load batch %s: %w", id, err)
	}
	return dto.FromBatch(batch, true), nil
}

// ByIdentifier loads a batch by its external batch identifier.
func (uc *GetBatch) ByIdentifier(ctx context.Context, identifier string) (dto.BatchResponse, error) {
	batch, err := uc.batches.FindByIdentifier(ctx, identifier)
	if err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to load batch %q: %w", identifier, err)
	}
	return dto.FromBatch(batch, true), nil
}
