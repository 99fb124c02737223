package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/usecase"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/event"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/service"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/pkg/events"
)

// --- Mock implementations ---

type mockBatchRepository struct {
	existing   *model.BatchResult
	savedBatch *model.BatchResult
	saveFunc   func(ctx context.Context, batch *model.BatchResult) error
}

func (m *mockBatchRepository) Save(ctx context.Context, batch *model.BatchResult) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, batch)
	}
	m.savedBatch = batch
	return nil
}

func (m *mockBatchRepository) FindByID(_ context.Context, _ uuid.UUID) (*model.BatchResult, error) {
	return nil, port.ErrNotFound
}

func (m *mockBatchRepository) FindByIdentifier(_ context.Context, identifier string) (*model.BatchResult, error) {
	if m.existing != nil && m.existing.Identifier() == identifier {
		return m.existing, nil
	}
	return nil, port.ErrNotFound
}

func (m *mockBatchRepository) ListByVendor(_ context.Context, _ string, _ int) ([]*model.BatchResult, error) {
	return nil, nil
}

type mockVendorRepository struct {
	existing    *model.VendorProfile
	savedVendor *model.VendorProfile
}

func (m *mockVendorRepository) Save(_ context.Context, vendor *model.VendorProfile) error {
	m.savedVendor = vendor
	return nil
}

func (m *mockVendorRepository) FindByID(_ context.Context, _ uuid.UUID) (*model.VendorProfile, error) {
	return nil, port.ErrNotFound
}

func (m *mockVendorRepository) FindByName(_ context.Context, name string) (*model.VendorProfile, error) {
	if m.existing != nil && m.existing.Name() == name {
		return m.existing, nil
	}
	return nil, port.ErrNotFound
}

func (m *mockVendorRepository) List(_ context.Context) ([]*model.VendorProfile, error) {
	if m.existing == nil {
		return nil, nil
	}
	return []*model.VendorProfile{m.existing}, nil
}

type mockBlacklistRepository struct {
	known    map[string]map[string]*model.BlacklistEntry
	upserted []*model.BlacklistEntry
	findErr  error
}

func (m *mockBlacklistRepository) FindValues(_ context.Context, entryType string, values []string) (map[string]*model.BlacklistEntry, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make(map[string]*model.BlacklistEntry)
	for _, v := range values {
		if entry, ok := m.known[entryType][v]; ok {
			out[v] = entry
		}
	}
	return out, nil
}

func (m *mockBlacklistRepository) Upsert(_ context.Context, entries []*model.BlacklistEntry) error {
	m.upserted = append(m.upserted, entries...)
	return nil
}

type mockEventPublisher struct {
	published  []events.DomainEvent
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evts...)
	return nil
}

type stubEmailValidator struct {
	verdict *port.Verdict
	err     error
	calls   int
}

func (s *stubEmailValidator) ValidateEmail(_ context.Context, _ string) (*port.Verdict, error) {
	s.calls++
	return s.verdict, s.err
}

// --- Tests ---

// fraudulentLeads returns identical leads sharing one contact identity, so
// exact-duplicate and repeated-contact rules stack every lead past the
// fraudulent threshold.
func fraudulentLeads(n int) []*model.Lead {
	leads := make([]*model.Lead, n)
	for i := range leads {
		leads[i] = &model.Lead{
			ID:    uuid.New(),
			Name:  "test",
			Email: "shared@burner.com",
			Phone: "5551110001",
		}
	}
	return leads
}

var testFirstNames = []string{"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry", "Irene", "Jack"}
var testLastNames = []string{"Anderson", "Brooks", "Carter", "Dawson", "Ellis", "Foster", "Griffin", "Hayes", "Ingram", "Jensen"}

// cleanLeads returns leads distinct enough that no duplicate, repeated or
// quality rule fires.
func cleanLeads(n int) []*model.Lead {
	leads := make([]*model.Lead, n)
	for i := range leads {
		first := testFirstNames[i%len(testFirstNames)]
		last := testLastNames[(i/len(testFirstNames))%len(testLastNames)]
		leads[i] = &model.Lead{
			ID:    uuid.New(),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone: fmt.Sprintf("212555%04d", (i*373)%10000),
			State: "NY",
		}
	}
	return leads
}

func newScoreBatch(batches port.BatchRepository, vendors port.VendorRepository, blacklist port.BlacklistRepository, publisher port.EventPublisher, validators usecase.Validators) *usecase.ScoreBatch {
	return usecase.NewScoreBatch(batches, vendors, blacklist, publisher, validators, service.DefaultRules(), 4, nil)
}

func TestScoreBatch_CleanBatch(t *testing.T) {
	batches := &mockBatchRepository{}
	vendors := &mockVendorRepository{}
	blacklist := &mockBlacklistRepository{}
	publisher := &mockEventPublisher{}

	uc := newScoreBatch(batches, vendors, blacklist, publisher, usecase.Validators{})

	resp, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-001",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(10),
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.TotalLeads)
	assert.Equal(t, 0, resp.FraudulentLeads)
	assert.Equal(t, "NONE", resp.RefundStatus)
	assert.Equal(t, "0", resp.RefundAmount)
	assert.Len(t, resp.Results, 10)

	require.NotNil(t, batches.savedBatch)
	require.NotNil(t, vendors.savedVendor)
	assert.Equal(t, 1, vendors.savedVendor.TotalBatches())

	// Clean batches publish only the analysis event
	require.Len(t, publisher.published, 1)
	assert.Equal(t, event.EventTypeBatchAnalyzed, publisher.published[0].EventType())

	// No fraudulent leads, nothing blacklisted
	assert.Empty(t, blacklist.upserted)
}

func TestScoreBatch_FraudulentBatchTriggersFullRefund(t *testing.T) {
	batches := &mockBatchRepository{}
	vendors := &mockVendorRepository{}
	blacklist := &mockBlacklistRepository{}
	publisher := &mockEventPublisher{}

	uc := newScoreBatch(batches, vendors, blacklist, publisher, usecase.Validators{})

	resp, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "bad-vendor",
		BatchIdentifier: "batch-002",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           fraudulentLeads(6),
	})
	require.NoError(t, err)

	assert.Greater(t, resp.FraudulentLeads, 0)
	assert.Equal(t, "FULL", resp.RefundStatus)
	assert.Equal(t, "30", resp.RefundAmount) // 6 leads at $5

	// Full-refund batches announce high fraud; the vendor jumps straight to
	// blacklisted and announces the status change
	types := make([]string, 0, len(publisher.published))
	for _, e := range publisher.published {
		types = append(types, e.EventType())
	}
	assert.Contains(t, types, event.EventTypeBatchAnalyzed)
	assert.Contains(t, types, event.EventTypeHighFraudDetected)
	assert.Contains(t, types, event.EventTypeVendorStatusChanged)
}

func TestScoreBatch_InputValidation(t *testing.T) {
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{})

	tests := []struct {
		name string
		req  dto.ScoreBatchRequest
	}{
		{"missing vendor", dto.ScoreBatchRequest{BatchIdentifier: "b", Leads: cleanLeads(1)}},
		{"missing identifier", dto.ScoreBatchRequest{VendorName: "v", Leads: cleanLeads(1)}},
		{"no leads", dto.ScoreBatchRequest{VendorName: "v", BatchIdentifier: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errs.IsInputError(err))
		})
	}
}

func TestScoreBatch_ProviderFailureDegrades(t *testing.T) {
	validator := &stubEmailValidator{err: fmt.Errorf("provider timeout")}
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{Email: validator})

	resp, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-003",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(5),
	})

	// The batch completes; failed channels degrade to unknown
	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalLeads)
	assert.Equal(t, 5, validator.calls)
	for _, r := range resp.Results {
		assert.Equal(t, 0, r.FraudScore)
	}
}

func TestScoreBatch_DisposableVerdictScores(t *testing.T) {
	validator := &stubEmailValidator{verdict: &port.Verdict{Valid: true, Flagged: true}}
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{Email: validator})

	resp, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-004",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(3),
	})
	require.NoError(t, err)

	for _, r := range resp.Results {
		assert.Equal(t, 10, r.Contact)
		assert.Contains(t, r.Reasons, service.ReasonDisposableEmail)
	}
}

func TestScoreBatch_BlacklistedContactScores(t *testing.T) {
	leads := cleanLeads(2)
	blacklist := &mockBlacklistRepository{
		known: map[string]map[string]*model.BlacklistEntry{
			model.BlacklistTypeEmail: {
				leads[0].NormalizedEmail(): {Value: leads[0].NormalizedEmail()},
			},
		},
	}
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, blacklist, &mockEventPublisher{}, usecase.Validators{})

	resp, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-005",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           leads,
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Results[0].Reasons, service.ReasonEmailBlacklisted)
	assert.NotContains(t, resp.Results[1].Reasons, service.ReasonEmailBlacklisted)
}

func TestScoreBatch_FraudulentContactsRecorded(t *testing.T) {
	blacklist := &mockBlacklistRepository{}
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, blacklist, &mockEventPublisher{}, usecase.Validators{})

	_, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "bad-vendor",
		BatchIdentifier: "batch-006",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           fraudulentLeads(4),
	})
	require.NoError(t, err)

	values := make([]string, 0, len(blacklist.upserted))
	for _, e := range blacklist.upserted {
		values = append(values, e.Value)
	}
	assert.Contains(t, values, "shared@burner.com")
	assert.Contains(t, values, "5551110001")
}

func TestScoreBatch_ExistingVendorAccumulates(t *testing.T) {
	existing, err := model.NewVendorProfile("acme-leads")
	require.NoError(t, err)
	vendors := &mockVendorRepository{existing: existing}

	uc := newScoreBatch(&mockBatchRepository{}, vendors, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{})

	_, err = uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-007",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(3),
	})
	require.NoError(t, err)

	require.NotNil(t, vendors.savedVendor)
	assert.Equal(t, existing.ID(), vendors.savedVendor.ID())
	assert.Equal(t, 1, vendors.savedVendor.TotalBatches())
}

func TestScoreBatch_RescoreDoesNotDoubleFold(t *testing.T) {
	batches := &mockBatchRepository{}
	vendors := &mockVendorRepository{}
	uc := newScoreBatch(batches, vendors, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{})

	req := dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-011",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           fraudulentLeads(4),
	}
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	firstVendor := vendors.savedVendor
	require.NotNil(t, firstVendor)
	require.Equal(t, 1, firstVendor.TotalBatches())
	firstRefunds := firstVendor.TotalRefunds()
	firstRate := firstVendor.AverageFraudRate()

	// Re-analyzing the same identifier replaces the earlier contribution
	// instead of stacking a second one
	batches.existing = batches.savedBatch
	vendors.existing = firstVendor

	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	rescored := vendors.savedVendor
	assert.Equal(t, 1, rescored.TotalBatches())
	assert.Equal(t, 4, rescored.TotalLeads())
	assert.True(t, rescored.TotalRefunds().Equal(firstRefunds))
	assert.InDelta(t, firstRate, rescored.AverageFraudRate(), 1e-9)
}

func TestScoreBatch_SaveErrorPropagates(t *testing.T) {
	batches := &mockBatchRepository{saveFunc: func(context.Context, *model.BatchResult) error {
		return fmt.Errorf("connection lost")
	}}
	uc := newScoreBatch(batches, &mockVendorRepository{}, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{})

	_, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-008",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(2),
	})
	assert.ErrorContains(t, err, "failed to save batch")
}

func TestScoreBatch_PublishFailureIsNotFatal(t *testing.T) {
	publisher := &mockEventPublisher{publishErr: fmt.Errorf("broker down")}
	uc := newScoreBatch(&mockBatchRepository{}, &mockVendorRepository{}, &mockBlacklistRepository{}, publisher, usecase.Validators{})

	_, err := uc.Execute(context.Background(), dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-009",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(2),
	})
	assert.NoError(t, err)
}

func TestScoreBatch_CancelledContextAborts(t *testing.T) {
	batches := &mockBatchRepository{}
	uc := newScoreBatch(batches, &mockVendorRepository{}, &mockBlacklistRepository{}, &mockEventPublisher{}, usecase.Validators{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Execute(ctx, dto.ScoreBatchRequest{
		VendorName:      "acme-leads",
		BatchIdentifier: "batch-010",
		CostPerLead:     decimal.NewFromFloat(5),
		Leads:           cleanLeads(50),
	})
	require.Error(t, err)

	// Partial results are discarded, nothing persisted
	assert.Nil(t, batches.savedBatch)
}
