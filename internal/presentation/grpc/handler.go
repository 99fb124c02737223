package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/dto"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/application/usecase"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/errs"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/model"
	"github.com/alanredmond23-bit/LEAD-VALIDATION/internal/domain/port"
)

// Compile-time assertion that Handler implements LeadValidationServiceServer.
var _ LeadValidationServiceServer = (*Handler)(nil)

// Handler implements the gRPC LeadValidationServiceServer interface.
type Handler struct {
	UnimplementedLeadValidationServiceServer
	scoreBatch  *usecase.ScoreBatch
	getBatch    *usecase.GetBatch
	getVendor   *usecase.GetVendor
	listVendors *usecase.ListVendors
	logger      *slog.Logger
}

// NewHandler creates a new gRPC handler.
func NewHandler(
	scoreBatch *usecase.ScoreBatch,
	getBatch *usecase.GetBatch,
	getVendor *usecase.GetVendor,
	listVendors *usecase.ListVendors,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		scoreBatch:  scoreBatch,
		getBatch:    getBatch,
		getVendor:   getVendor,
		listVendors: listVendors,
		logger:      logger,
	}
}

// Proto-aligned request/response message types.

// LeadMsg represents the proto Lead message.
type LeadMsg struct {
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	IPAddress   string `json:"ip_address"`
	SubmittedAt string `json:"submitted_at"`
}

// ScoreBatchRequest represents the proto ScoreBatchRequest message.
type ScoreBatchRequest struct {
	VendorName      string     `json:"vendor_name"`
	BatchIdentifier string     `json:"batch_identifier"`
	CostPerLead     string     `json:"cost_per_lead"`
	Leads           []*LeadMsg `json:"leads"`
}

// LeadResultMsg represents the proto LeadResult message.
type LeadResultMsg struct {
	ID             string   `json:"id"`
	ExternalID     string   `json:"external_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	FraudScore     int32    `json:"fraud_score"`
	Classification string   `json:"classification"`
	Reasons        []string `json:"reasons"`
}

// IndicatorMsg represents the proto FraudIndicator message.
type IndicatorMsg struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	AffectedLeads int32   `json:"affected_leads"`
	Percentage    float64 `json:"percentage"`
}

// BatchSummaryMsg represents the proto BatchSummary message.
type BatchSummaryMsg struct {
	ID              string          `json:"id"`
	BatchIdentifier string          `json:"batch_identifier"`
	VendorName      string          `json:"vendor_name"`
	TotalLeads      int32           `json:"total_leads"`
	ValidLeads      int32           `json:"valid_leads"`
	FraudulentLeads int32           `json:"fraudulent_leads"`
	FraudPercentage float64         `json:"fraud_percentage"`
	RefundStatus    string          `json:"refund_status"`
	RefundAmount    string          `json:"refund_amount"`
	TotalCost       string          `json:"total_cost"`
	Indicators      []*IndicatorMsg `json:"indicators"`
}

// ScoreBatchResponse represents the proto ScoreBatchResponse message.
type ScoreBatchResponse struct {
	Batch   *BatchSummaryMsg `json:"batch"`
	Results []*LeadResultMsg `json:"results"`
}

// GetBatchRequest represents the proto GetBatchRequest message. Exactly one
// of ID or BatchIdentifier must be set.
type GetBatchRequest struct {
	ID              string `json:"id"`
	BatchIdentifier string `json:"batch_identifier"`
}

// GetBatchResponse represents the proto GetBatchResponse message.
type GetBatchResponse struct {
	Batch   *BatchSummaryMsg `json:"batch"`
	Results []*LeadResultMsg `json:"results"`
}

// VendorMsg represents the proto Vendor message.
type VendorMsg struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	TotalBatches     int32   `json:"total_batches"`
	TotalLeads       int32   `json:"total_leads"`
	FraudulentLeads  int32   `json:"fraudulent_leads"`
	AverageFraudRate float64 `json:"average_fraud_rate"`
	TotalRefunds     string  `json:"total_refunds"`
	Status           string  `json:"status"`
}

// GetVendorRequest represents the proto GetVendorRequest message.
type GetVendorRequest struct {
	Name string `json:"name"`
}

// GetVendorResponse represents the proto GetVendorResponse message.
type GetVendorResponse struct {
	Vendor         *VendorMsg         `json:"vendor"`
	Trend          string             `json:"trend"`
	Recommendation string             `json:"recommendation"`
	RecentBatches  []*BatchSummaryMsg `json:"recent_batches"`
}

// ListVendorsRequest represents the proto ListVendorsRequest message.
type ListVendorsRequest struct{}

// ListVendorsResponse represents the proto ListVendorsResponse message.
type ListVendorsResponse struct {
	Vendors []*VendorMsg `json:"vendors"`
}

// ScoreBatch handles a batch scoring request.
func (h *Handler) ScoreBatch(ctx context.Context, req *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	costPerLead, err := decimal.NewFromString(req.CostPerLead)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid cost_per_lead: %v", err)
	}

	leads := make([]*model.Lead, 0, len(req.Leads))
	for _, msg := range req.Leads {
		if msg == nil {
			continue
		}
		lead := &model.Lead{
			ID:         uuid.New(),
			ExternalID: msg.ExternalID,
			Name:       msg.Name,
			Email:      msg.Email,
			Phone:      msg.Phone,
			Address:    msg.Address,
			City:       msg.City,
			State:      msg.State,
			Zip:        msg.Zip,
			IPAddress:  msg.IPAddress,
		}
		if msg.SubmittedAt != "" {
			if ts, err := time.Parse(time.RFC3339, msg.SubmittedAt); err == nil {
				lead.SubmittedAt = ts
			}
		}
		leads = append(leads, lead)
	}

	result, err := h.scoreBatch.Execute(ctx, dto.ScoreBatchRequest{
		VendorName:      req.VendorName,
		BatchIdentifier: req.BatchIdentifier,
		CostPerLead:     costPerLead,
		Leads:           leads,
	})
	if err != nil {
		if errs.IsInputError(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("failed to score batch",
			slog.String("batch_identifier", req.BatchIdentifier),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &ScoreBatchResponse{
		Batch:   batchSummaryMsg(result),
		Results: leadResultMsgs(result.Results),
	}, nil
}

// GetBatch handles a batch retrieval request.
func (h *Handler) GetBatch(ctx context.Context, req *GetBatchRequest) (*GetBatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var result dto.BatchResponse
	var err error
	switch {
	case req.ID != "":
		id, parseErr := uuid.Parse(req.ID)
		if parseErr != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", parseErr)
		}
		result, err = h.getBatch.ByID(ctx, id)
	case req.BatchIdentifier != "":
		result, err = h.getBatch.ByIdentifier(ctx, req.BatchIdentifier)
	default:
		return nil, status.Error(codes.InvalidArgument, "id or batch_identifier is required")
	}
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "batch not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetBatchResponse{
		Batch:   batchSummaryMsg(result),
		Results: leadResultMsgs(result.Results),
	}, nil
}

// GetVendor handles a vendor detail request.
func (h *Handler) GetVendor(ctx context.Context, req *GetVendorRequest) (*GetVendorResponse, error) {
	if req == nil || req.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "vendor name is required")
	}

	result, err := h.getVendor.Execute(ctx, req.Name)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "vendor not found")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	recent := make([]*BatchSummaryMsg, 0, len(result.RecentBatches))
	for _, b := range result.RecentBatches {
		recent = append(recent, batchSummaryMsg(b))
	}

	return &GetVendorResponse{
		Vendor:         vendorMsg(result.VendorResponse),
		Trend:          result.Trend,
		Recommendation: result.Recommendation,
		RecentBatches:  recent,
	}, nil
}

// ListVendors handles a vendor listing request.
func (h *Handler) ListVendors(ctx context.Context, _ *ListVendorsRequest) (*ListVendorsResponse, error) {
	vendors, err := h.listVendors.Execute(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := make([]*VendorMsg, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, vendorMsg(v))
	}
	return &ListVendorsResponse{Vendors: out}, nil
}

func batchSummaryMsg(b dto.BatchResponse) *BatchSummaryMsg {
	msg := &BatchSummaryMsg{
		ID:              b.ID.String(),
		BatchIdentifier: b.BatchIdentifier,
		VendorName:      b.VendorName,
		TotalLeads:      int32(b.TotalLeads),
		ValidLeads:      int32(b.ValidLeads),
		FraudulentLeads: int32(b.FraudulentLeads),
		FraudPercentage: b.FraudPercentage,
		RefundStatus:    b.RefundStatus,
		RefundAmount:    b.RefundAmount,
		TotalCost:       b.TotalCost,
	}
	for _, ind := range b.Indicators {
		msg.Indicators = append(msg.Indicators, &IndicatorMsg{
			Name:          ind.Name,
			Category:      ind.Category,
			AffectedLeads: int32(ind.AffectedLeads),
			Percentage:    ind.Percentage,
		})
	}
	return msg
}

func leadResultMsgs(results []dto.LeadResultResponse) []*LeadResultMsg {
	out := make([]*LeadResultMsg, 0, len(results))
	for _, r := range results {
		out = append(out, &LeadResultMsg{
			ID:             r.ID.String(),
			ExternalID:     r.ExternalID,
			Name:           r.Name,
			Email:          r.Email,
			Phone:          r.Phone,
			FraudScore:     int32(r.FraudScore),
			Classification: r.Classification,
			Reasons:        r.Reasons,
		})
	}
	return out
}

func vendorMsg(v dto.VendorResponse) *VendorMsg {
	return &VendorMsg{
		ID:               v.ID.String(),
		Name:             v.Name,
		TotalBatches:     int32(v.TotalBatches),
		TotalLeads:       int32(v.TotalLeads),
		FraudulentLeads:  int32(v.FraudulentLeads),
		AverageFraudRate: v.AverageFraudRate,
		TotalRefunds:     v.TotalRefunds,
		Status:           v.Status,
	}
}
