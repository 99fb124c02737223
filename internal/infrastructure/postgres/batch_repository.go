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
	pgutil "github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/postgres"
)

// leadInsertChunk bounds how many per-lead rows go into one batched insert.
const leadInsertChunk = 500

// BatchRepository implements port.BatchRepository using PostgreSQL.
type BatchRepository struct {
	pool *pgxpool.Pool
}

// NewBatchRepository creates a new PostgreSQL-backed batch repository.
func NewBatchRepository(pool *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{pool: pool}
}

// Save persists a batch, its per-lead results and its fraud indicators in
// one transaction. Re-analysis of the same batch identifier replaces the
// previous row entirely; per-lead rows and indicators go with it via the
// ON DELETE CASCADE on batch_id.
func (r *BatchRepository) Save(ctx context.Context, batch *model.BatchResult) error {
	return pgutil.WithinTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM batches WHERE batch_identifier = $1`, batch.Identifier()); err != nil {
			return fmt.Errorf("failed to delete previous batch: %w", err)
		}

		avg := batch.Averages()
		_, err := tx.Exec(ctx, `
			INSERT INTO batches (
				id, batch_identifier, vendor_name, input_filename,
				cost_per_lead, total_cost, total_leads, fraudulent_leads,
				fraud_percentage, refund_status, refund_amount,
				avg_fraud_score, avg_contact, avg_duplicate, avg_geographic,
				avg_timing, avg_quality, analyzed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		`,
			batch.ID(), batch.Identifier(), batch.VendorName(), batch.InputFilename(),
			batch.CostPerLead(), batch.TotalCost(), batch.Total(), batch.FraudulentCount(),
			batch.FraudPercentage(), batch.RefundStatus().String(), batch.RefundAmount(),
			avg.FraudScore, avg.Contact, avg.Duplicate, avg.Geographic,
			avg.Timing, avg.Quality, batch.AnalyzedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}

		if err := r.insertLeadResults(ctx, tx, batch); err != nil {
			return err
		}

		for _, ind := range batch.Indicators() {
			_, err := tx.Exec(ctx, `
				INSERT INTO batch_fraud_indicators (batch_id, name, category, affected_leads, percentage)
				VALUES ($1, $2, $3, $4, $5)
			`, batch.ID(), ind.Name, ind.Category, ind.AffectedLeads, ind.Percentage)
			if err != nil {
				return fmt.Errorf("failed to save indicator: %w", err)
			}
		}
		return nil
	})
}

// insertLeadResults bulk-inserts per-lead rows in chunks to keep statement
// sizes bounded on large batches.
func (r *BatchRepository) insertLeadResults(ctx context.Context, tx pgx.Tx, batch *model.BatchResult) error {
	results := batch.Results()
	for start := 0; start < len(results); start += leadInsertChunk {
		end := start + leadInsertChunk
		if end > len(results) {
			end = len(results)
		}

		pgBatch := &pgx.Batch{}
		for i, result := range results[start:end] {
			lead := result.Lead()
			breakdown := result.Breakdown()
			var submittedAt *time.Time
			if !lead.SubmittedAt.IsZero() {
				t := lead.SubmittedAt
				submittedAt = &t
			}
			pgBatch.Queue(`
				INSERT INTO lead_results (
					id, batch_id, position, external_id,
					name, email, phone, address, city, state, zip, ip_address, submitted_at,
					fraud_score, classification, reasons,
					contact_score, duplicate_score, geographic_score, timing_score, quality_score,
					scored_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
			`,
				result.ID(), batch.ID(), start+i, lead.ExternalID,
				lead.Name, lead.Email, lead.Phone, lead.Address, lead.City, lead.State, lead.Zip, lead.IPAddress, submittedAt,
				result.FraudScore(), result.Classification().String(), result.Reasons(),
				breakdown.Contact, breakdown.Duplicate, breakdown.Geographic, breakdown.Timing, breakdown.Quality,
				result.ScoredAt(),
			)
		}

		br := tx.SendBatch(ctx, pgBatch)
		for i := 0; i < pgBatch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to save lead results: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to flush lead results: %w", err)
		}
	}
	return nil
}

// FindByID retrieves a batch with its per-lead results.
func (r *BatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BatchResult, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByIdentifier retrieves a batch by its external identifier.
func (r *BatchRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.BatchResult, error) {
	return r.findOne(ctx, `WHERE batch_identifier = $1`, identifier)
}

// ListByVendor retrieves a vendor's batches, newest first, without per-lead
// results.
func (r *BatchRepository) ListByVendor(ctx context.Context, vendorName string, limit int) ([]*model.BatchResult, error) {
	query := batchSelect + ` WHERE vendor_name = $1 ORDER BY analyzed_at DESC`
	args := []any{vendorName}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches: %w", err)
	}
	defer rows.Close()

	var batches []*model.BatchResult
	for rows.Next() {
		batch, err := scanBatch(rows, nil, nil)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}

const batchSelect = `
	SELECT id, batch_identifier, vendor_name, input_filename,
		cost_per_lead, total_cost, total_leads, fraudulent_leads,
		fraud_percentage, refund_status, refund_amount,
		avg_fraud_score, avg_contact, avg_duplicate, avg_geographic,
		avg_timing, avg_quality, analyzed_at
	FROM batches
`

func (r *BatchRepository) findOne(ctx context.Context, where string, arg any) (*model.BatchResult, error) {
	row := r.pool.QueryRow(ctx, batchSelect+where, arg)

	var (
		id              uuid.UUID
		identifier      string
		vendorName      string
		inputFilename   string
		costPerLead     decimal.Decimal
		totalCost       decimal.Decimal
		totalLeads      int
		fraudulentCount int
		fraudPct        float64
		refundStatusStr string
		refundAmount    decimal.Decimal
		avg             model.CategoryAverages
		analyzedAt      time.Time
	)
	err := row.Scan(
		&id, &identifier, &vendorName, &inputFilename,
		&costPerLead, &totalCost, &totalLeads, &fraudulentCount,
		&fraudPct, &refundStatusStr, &refundAmount,
		&avg.FraudScore, &avg.Contact, &avg.Duplicate, &avg.Geographic,
		&avg.Timing, &avg.Quality, &analyzedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}

	refundStatus, err := valueobject.RefundStatusFromString(refundStatusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse refund status: %w", err)
	}

	results, err := r.loadLeadResults(ctx, id)
	if err != nil {
		return nil, err
	}
	indicators, err := r.loadIndicators(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.ReconstructBatchResult(
		id, vendorName, identifier, inputFilename,
		costPerLead, totalCost, results, totalLeads,
		fraudulentCount, fraudPct, refundStatus, refundAmount,
		avg, indicators, analyzedAt,
	), nil
}

// scanBatch maps one batches row. results and indicators may be nil for
// list views.
func scanBatch(rows pgx.Rows, results []*model.LeadFraudResult, indicators []model.FraudIndicator) (*model.BatchResult, error) {
	var (
		id              uuid.UUID
		identifier      string
		vendorName      string
		inputFilename   string
		costPerLead     decimal.Decimal
		totalCost       decimal.Decimal
		totalLeads      int
		fraudulentCount int
		fraudPct        float64
		refundStatusStr string
		refundAmount    decimal.Decimal
		avg             model.CategoryAverages
		analyzedAt      time.Time
	)
	err := rows.Scan(
		&id, &identifier, &vendorName, &inputFilename,
		&costPerLead, &totalCost, &totalLeads, &fraudulentCount,
		&fraudPct, &refundStatusStr, &refundAmount,
		&avg.FraudScore, &avg.Contact, &avg.Duplicate, &avg.Geographic,
		&avg.Timing, &avg.Quality, &analyzedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}

	refundStatus, err := valueobject.RefundStatusFromString(refundStatusStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse refund status: %w", err)
	}

	return model.ReconstructBatchResult(
		id, vendorName, identifier, inputFilename,
		costPerLead, totalCost, results, totalLeads,
		fraudulentCount, fraudPct, refundStatus, refundAmount,
		avg, indicators, analyzedAt,
	), nil
}

func (r *BatchRepository) loadLeadResults(ctx context.Context, batchID uuid.UUID) ([]*model.LeadFraudResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, external_id, name, email, phone, address, city, state, zip, ip_address, submitted_at,
			fraud_score, classification, reasons,
			contact_score, duplicate_score, geographic_score, timing_score, quality_score, scored_at
		FROM lead_results
		WHERE batch_id = $1
		ORDER BY position
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead results: %w", err)
	}
	defer rows.Close()

	var results []*model.LeadFraudResult
	for rows.Next() {
		var (
			id                uuid.UUID
			lead              model.Lead
			submittedAt       *time.Time
			fraudScore        int
			classificationStr string
			reasons           []string
			breakdown         valueobject.ScoreBreakdown
			scoredAt          time.Time
		)
		err := rows.Scan(
			&id, &lead.ExternalID, &lead.Name, &lead.Email, &lead.Phone,
			&lead.Address, &lead.City, &lead.State, &lead.Zip, &lead.IPAddress, &submittedAt,
			&fraudScore, &classificationStr, &reasons,
			&breakdown.Contact, &breakdown.Duplicate, &breakdown.Geographic,
			&breakdown.Timing, &breakdown.Quality, &scoredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead result: %w", err)
		}

		lead.ID = id
		if submittedAt != nil {
			lead.SubmittedAt = *submittedAt
		}
		classification, err := valueobject.ClassificationFromString(classificationStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse classification: %w", err)
		}
		results = append(results, model.ReconstructLeadFraudResult(id, lead, fraudScore, classification, reasons, breakdown, scoredAt))
	}
	return results, rows.Err()
}

func (r *BatchRepository) loadIndicators(ctx context.Context, batchID uuid.UUID) ([]model.FraudIndicator, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, category, affected_leads, percentage
		FROM batch_fraud_indicators
		WHERE batch_id = $1
		ORDER BY affected_leads DESC, name
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query indicators: %w", err)
	}
	defer rows.Close()

	var indicators []model.FraudIndicator
	for rows.Next() {
		var ind model.FraudIndicator
		if err := rows.Scan(&ind.Name, &ind.Category, &ind.AffectedLeads, &ind.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		indicators = append(indicators, ind)
	}
	return indicators, rows.Err()
}
