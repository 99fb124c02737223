package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/valueobject"
)

// VendorRepository implements port.VendorRepository using PostgreSQL.
type VendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository creates a new PostgreSQL-backed vendor repository.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

// Save upserts a vendor profile keyed by name.
func (r *VendorRepository) Save(ctx context.Context, vendor *model.VendorProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vendors (
			id, name, total_batches, total_leads, fraudulent_leads,
			rate_sum, average_fraud_rate, total_refunds, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (name) DO UPDATE SET
			total_batches = EXCLUDED.total_batches,
			total_leads = EXCLUDED.total_leads,
			fraudulent_leads = EXCLUDED.fraudulent_leads,
			rate_sum = EXCLUDED.rate_sum,
			average_fraud_rate = EXCLUDED.average_fraud_rate,
			total_refunds = EXCLUDED.total_refunds,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`,
		vendor.ID(), vendor.Name(), vendor.TotalBatches(), vendor.TotalLeads(), vendor.FraudulentLeads(),
		vendor.RateSum(), vendor.AverageFraudRate(), vendor.TotalRefunds(), vendor.Status().String(),
		vendor.CreatedAt(), vendor.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

const vendorSelect = `
	SELECT id, name, total_batches, total_leads, fraudulent_leads,
		rate_sum, average_fraud_rate, total_refunds, status,
		created_at, updated_at
	FROM vendors
`

// FindByID retrieves a vendor by ID.
func (r *VendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.VendorProfile, error) {
	return scanVendor(r.pool.QueryRow(ctx, vendorSelect+`WHERE id = $1`, id))
}

// FindByName retrieves a vendor by its unique name.
func (r *VendorRepository) FindByName(ctx context.Context, name string) (*model.VendorProfile, error) {
	return scanVendor(r.pool.QueryRow(ctx, vendorSelect+`WHERE name = $1`, name))
}

// List retrieves all vendors ordered by average fraud rate, worst first.
func (r *VendorRepository) List(ctx context.Context) ([]*model.VendorProfile, error) {
	rows, err := r.pool.Query(ctx, vendorSelect+`ORDER BY average_fraud_rate DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*model.VendorProfile
	for rows.Next() {
		vendor, err := scanVendor(rows)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, vendor)
	}
	return vendors, rows.Err()
}

func scanVendor(row pgx.Row) (*model.VendorProfile, error) {
	var (
		id               uuid.UUID
		name             string
		totalBatches     int
		totalLeads       int
		fraudulentLeads  int
		rateSum          float64
		averageFraudRate float64
		totalRefunds     decimal.Decimal
		statusStr        string
		createdAt        time.Time
		updatedAt        time.Time
	)
	err := row.Scan(
		&id, &name, &totalBatches, &totalLeads, &fraudulentLeads,
		&rateSum, &averageFraudRate, &totalRefunds, &statusStr,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan vendor: %w", err)
	}

	status, err := valueobject.VendorStatusFromString(statusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vendor status: %w", err)
	}

	return model.ReconstructVendorProfile(
		id, name, totalBatches, totalLeads, fraudulentLeads,
		rateSum, averageFraudRate, totalRefunds, status,
		createdAt, updatedAt,
	), nil
}
