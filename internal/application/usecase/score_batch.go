package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/service"
)

// Validators bundles the optional per-channel validation capabilities. A nil
// channel is simply not consulted; its signals stay unknown.
type Validators struct {
	Phone port.PhoneValidator
	Email port.EmailValidator
	IP    port.IPValidator
}

// ScoreBatch is the use case for analyzing one vendor batch end to end:
// batch-wide duplicate and timing passes, bounded-concurrency per-lead
// scoring, refund determination, vendor fold, persistence and events.
type ScoreBatch struct {
	batches    port.BatchRepository
	vendors    port.VendorRepository
	blacklist  port.BlacklistRepository
	publisher  port.EventPublisher
	validators Validators
	rules      service.ScoringRules
	scorer     *service.LeadScorer
	detector   *service.DuplicateDetector
	timing     *service.TimingAnalyzer
	refunds    *service.RefundCalculator
	maxWorkers int64
	logger     *slog.Logger
}

// NewScoreBatch creates the use case. The rules must already be validated.
func NewScoreBatch(
	batches port.BatchRepository,
	vendors port.VendorRepository,
	blacklist port.BlacklistRepository,
	publisher port.EventPublisher,
	validators Validators,
	rules service.ScoringRules,
	maxWorkers int,
	logger *slog.Logger,
) *ScoreBatch {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreBatch{
		batches:    batches,
		vendors:    vendors,
		blacklist:  blacklist,
		publisher:  publisher,
		validators: validators,
		rules:      rules,
		scorer:     service.NewLeadScorer(rules),
		detector:   service.NewDuplicateDetector(rules.Duplicate),
		timing:     service.NewTimingAnalyzer(rules.Timing),
		refunds:    service.NewRefundCalculator(rules.Refund),
		maxWorkers: int64(maxWorkers),
		logger:     logger,
	}
}

// Execute scores the batch and returns its summary. InputErrors reject the
// batch before any scoring; provider failures degrade single channels and
// never abort the run. Cancellation discards all partial results.
func (uc *ScoreBatch) Execute(ctx context.Context, req dto.ScoreBatchRequest) (dto.BatchResponse, error) {
	if req.VendorName == "" {
		return dto.BatchResponse{}, errs.NewInputError("vendor name is required")
	}
	if req.BatchIdentifier == "" {
		return dto.BatchResponse{}, errs.NewInputError("batch identifier is required")
	}
	if len(req.Leads) == 0 {
		return dto.BatchResponse{}, errs.NewInputError("batch has no leads")
	}

	// 1. Batch-wide passes. These must complete before per-lead scoring so
	// scoring reads only immutable context.
	batchCtx := service.NewBatchContext()
	batchCtx.Duplicates = uc.detector.Detect(req.Leads)
	batchCtx.Timing = uc.timing.Analyze(req.Leads)
	uc.loadBlacklist(ctx, req.Leads, batchCtx)

	// 2. Per-lead scoring, concurrent with a bounded worker count since
	// validation calls are network-bound.
	results, err := uc.scoreLeads(ctx, req.Leads, batchCtx)
	if err != nil {
		return dto.BatchResponse{}, err
	}

	// 3. Refund determination and batch aggregate.
	determination := uc.refunds.Determine(results, req.CostPerLead)
	indicators := service.BuildIndicators(results)

	batch, err := model.NewBatchResult(
		req.VendorName,
		req.BatchIdentifier,
		req.InputFilename,
		req.CostPerLead,
		results,
		determination.FraudulentCount,
		determination.FraudPercentage,
		determination.Status,
		determination.Amount,
		indicators,
	)
	if err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to create batch result: %w", err)
	}

	// 4. Fold into the vendor profile. A re-analyzed batch identifier first
	// backs its previous result out so it never counts twice.
	vendor, err := uc.getOrCreateVendor(ctx, req.VendorName)
	if err != nil {
		return dto.BatchResponse{}, err
	}
	previous, err := uc.batches.FindByIdentifier(ctx, req.BatchIdentifier)
	if err != nil && !errors.Is(err, port.ErrNotFound) {
		return dto.BatchResponse{}, fmt.Errorf("failed to load previous batch: %w", err)
	}
	if previous != nil && previous.VendorName() == vendor.Name() {
		if err := vendor.Unfold(previous, uc.rules.Vendor); err != nil {
			return dto.BatchResponse{}, fmt.Errorf("failed to unfold previous batch: %w", err)
		}
	}
	if err := vendor.Fold(batch, uc.rules.Vendor); err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to fold batch into vendor: %w", err)
	}

	// 5. Persist.
	if err := uc.batches.Save(ctx, batch); err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to save batch: %w", err)
	}
	if err := uc.vendors.Save(ctx, vendor); err != nil {
		return dto.BatchResponse{}, fmt.Errorf("failed to save vendor: %w", err)
	}
	uc.recordBlacklistHits(ctx, results)

	// 6. Publish domain events. Failures are logged; the analysis already
	// happened and is persisted.
	events := append(batch.DomainEvents(), vendor.DomainEvents()...)
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.Warn("failed to publish domain events",
				"batch_id", batch.ID(),
				"error", err,
			)
		}
	}

	uc.logger.Info("batch analyzed",
		"batch_id", batch.ID(),
		"vendor", req.VendorName,
		"total_leads", batch.Total(),
		"fraudulent_leads", batch.FraudulentCount(),
		"fraud_percentage", batch.FraudPercentage(),
		"refund_status", batch.RefundStatus().String(),
	)

	return dto.FromBatch(batch, true), nil
}

// scoreLeads runs per-lead scoring concurrently. Result order matches lead
// order; any error discards the whole slice.
func (uc *ScoreBatch) scoreLeads(ctx context.Context, leads []*model.Lead, batchCtx *service.BatchContext) ([]*model.LeadFraudResult, error) {
	results := make([]*model.LeadFraudResult, len(leads))
	sem := semaphore.NewWeighted(uc.maxWorkers)
	g, gctx := errgroup.WithContext(ctx)

	for i, lead := range leads {
		i, lead := i, lead
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			verdicts := uc.validateLead(gctx, lead)
			result, err := uc.scorer.ScoreLead(lead, verdicts, batchCtx)
			if err != nil {
				return fmt.Errorf("failed to score lead %s: %w", lead.ID, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// validateLead gathers provider verdicts for one lead. A provider failure
// degrades that channel to unknown rather than failing the lead.
func (uc *ScoreBatch) validateLead(ctx context.Context, lead *model.Lead) port.Verdicts {
	verdicts := port.Verdicts{}

	if uc.validators.Phone != nil && lead.Phone != "" {
		v, err := uc.validators.Phone.ValidatePhone(ctx, lead.Phone)
		if err != nil {
			uc.logger.Warn("phone validation degraded", "lead_id", lead.ID, "error", errs.NewProviderError("phone", err))
		} else {
			verdicts.Phone = v
		}
	}
	if uc.validators.Email != nil && lead.Email != "" {
		v, err := uc.validators.Email.ValidateEmail(ctx, lead.Email)
		if err != nil {
			uc.logger.Warn("email validation degraded", "lead_id", lead.ID, "error", errs.NewProviderError("email", err))
		} else {
			verdicts.Email = v
		}
	}
	if uc.validators.IP != nil && lead.IPAddress != "" {
		v, err := uc.validators.IP.ValidateIP(ctx, lead.IPAddress)
		if err != nil {
			uc.logger.Warn("ip validation degraded", "lead_id", lead.ID, "error", errs.NewProviderError("ip", err))
		} else {
			verdicts.IP = v
		}
	}
	return verdicts
}

// loadBlacklist looks up every contact value in the batch against the fraud
// blacklist. Lookup failure degrades to an empty blacklist.
func (uc *ScoreBatch) loadBlacklist(ctx context.Context, leads []*model.Lead, batchCtx *service.BatchContext) {
	if uc.blacklist == nil {
		return
	}

	emails := make([]string, 0, len(leads))
	phones := make([]string, 0, len(leads))
	seenEmail := make(map[string]bool)
	seenPhone := make(map[string]bool)
	for _, lead := range leads {
		if e := lead.NormalizedEmail(); e != "" && !seenEmail[e] {
			seenEmail[e] = true
			emails = append(emails, e)
		}
		if p := lead.NormalizedPhone(); p != "" && !seenPhone[p] {
			seenPhone[p] = true
			phones = append(phones, p)
		}
	}

	if entries, err := uc.blacklist.FindValues(ctx, model.BlacklistTypeEmail, emails); err != nil {
		uc.logger.Warn("blacklist lookup degraded", "type", model.BlacklistTypeEmail, "error", err)
	} else {
		for value := range entries {
			batchCtx.BlacklistedEmails[value] = true
		}
	}
	if entries, err := uc.blacklist.FindValues(ctx, model.BlacklistTypePhone, phones); err != nil {
		uc.logger.Warn("blacklist lookup degraded", "type", model.BlacklistTypePhone, "error", err)
	} else {
		for value := range entries {
			batchCtx.BlacklistedPhones[value] = true
		}
	}
}

// recordBlacklistHits upserts the contact values of fraudulent leads so
// future batches can match them. Failures are logged, not fatal.
func (uc *ScoreBatch) recordBlacklistHits(ctx context.Context, results []*model.LeadFraudResult) {
	if uc.blacklist == nil {
		return
	}

	entries := make([]*model.BlacklistEntry, 0)
	for _, result := range results {
		if !result.IsFraudulent() {
			continue
		}
		lead := result.Lead()
		reason := fmt.Sprintf("fraud score %d", result.FraudScore())
		if e := lead.NormalizedEmail(); e != "" {
			entry, err := model.NewBlacklistEntry(model.BlacklistTypeEmail, e, reason)
			if err == nil {
				entries = append(entries, entry)
			}
		}
		if p := lead.NormalizedPhone(); p != "" {
			entry, err := model.NewBlacklistEntry(model.BlacklistTypePhone, p, reason)
			if err == nil {
				entries = append(entries, entry)
			}
		}
	}
	if len(entries) == 0 {
		return
	}
	if err := uc.blacklist.Upsert(ctx, entries); err != nil {
		uc.logger.Warn("blacklist upsert failed", "entries", len(entries), "error", err)
	}
}

// getOrCreateVendor loads the vendor profile, creating a fresh one on first
// sight of the vendor name.
func (uc *ScoreBatch) getOrCreateVendor(ctx context.Context, name string) (*model.VendorProfile, error) {
	vendor, err := uc.vendors.FindByName(ctx, name)
	if err == nil {
		return vendor, nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return nil, fmt.Errorf("failed to load vendor %q: %w", name, err)
	}
	vendor, err = model.NewVendorProfile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor %q: %w", name, err)
	}
	return vendor, nil
}
