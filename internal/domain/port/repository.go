package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/events"
)

// ErrNotFound is returned by repositories when the requested aggregate does
// not exist.
var ErrNotFound = errors.New("not found")

// BatchRepository persists batch analysis results.
type BatchRepository interface {
	// Save stores a batch together with all of its per-lead results and
	// fraud indicators.
	Save(ctx context.Context, batch *model.BatchResult) error

	// FindByID loads a batch by its internal ID, including per-lead results.
	FindByID(ctx context.Context, id uuid.UUID) (*model.BatchResult, error)

	// FindByIdentifier loads a batch by its external batch identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*model.BatchResult, error)

	// ListByVendor returns the vendor's batches, newest first, without
	// per-lead results. A limit of 0 means no limit.
	ListByVendor(ctx context.Context, vendorName string, limit int) ([]*model.BatchResult, error)
}

// VendorRepository persists vendor profiles.
type VendorRepository interface {
	Save(ctx context.Context, vendor *model.VendorProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.VendorProfile, error)
	FindByName(ctx context.Context, name string) (*model.VendorProfile, error)
	List(ctx context.Context) ([]*model.VendorProfile, error)
}

// BlacklistRepository persists known-bad contact values.
type BlacklistRepository interface {
	// FindValues returns existing entries of the given type keyed by value.
	// Values with no entry are simply absent from the map.
	FindValues(ctx context.Context, entryType string, values []string) (map[string]*model.BlacklistEntry, error)

	// Upsert inserts new entries or bumps times_detected and last_seen_at on
	// existing ones.
	Upsert(ctx context.Context, entries []*model.BlacklistEntry) error
}

// EventPublisher publishes domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
