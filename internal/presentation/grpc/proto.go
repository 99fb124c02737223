package grpc

// proto.go defines the gRPC server interface derived from
// leadvalidation/v1/leadvalidation.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LeadValidationServiceServer is the server API for LeadValidationService.
type LeadValidationServiceServer interface {
	ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error)
	GetBatch(context.Context, *GetBatchRequest) (*GetBatchResponse, error)
	GetVendor(context.Context, *GetVendorRequest) (*GetVendorResponse, error)
	ListVendors(context.Context, *ListVendorsRequest) (*ListVendorsResponse, error)
	mustEmbedUnimplementedLeadValidationServiceServer()
}

// UnimplementedLeadValidationServiceServer provides forward-compatible default implementations.
type UnimplementedLeadValidationServiceServer struct{}

func (UnimplementedLeadValidationServiceServer) ScoreBatch(context.Context, *ScoreBatchRequest) (*ScoreBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreBatch not implemented")
}
func (UnimplementedLeadValidationServiceServer) GetBatch(context.Context, *GetBatchRequest) (*GetBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBatch not implemented")
}
func (UnimplementedLeadValidationServiceServer) GetVendor(context.Context, *GetVendorRequest) (*GetVendorResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVendor not implemented")
}
func (UnimplementedLeadValidationServiceServer) ListVendors(context.Context, *ListVendorsRequest) (*ListVendorsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVendors not implemented")
}
func (UnimplementedLeadValidationServiceServer) mustEmbedUnimplementedLeadValidationServiceServer() {}

// RegisterLeadValidationServiceServer registers the server with the gRPC server.
func RegisterLeadValidationServiceServer(s *grpclib.Server, srv LeadValidationServiceServer) {
	s.RegisterService(&_LeadValidationService_serviceDesc, srv)
}

var _LeadValidationService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "leadvalidation.v1.LeadValidationService",
	HandlerType: (*LeadValidationServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreBatch", Handler: _LeadValidationService_ScoreBatch_Handler},
		{MethodName: "GetBatch", Handler: _LeadValidationService_GetBatch_Handler},
		{MethodName: "GetVendor", Handler: _LeadValidationService_GetVendor_Handler},
		{MethodName: "ListVendors", Handler: _LeadValidationService_ListVendors_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _LeadValidationService_ScoreBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ScoreBatchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LeadValidationServiceServer).ScoreBatch(ctx, req)
}

func _LeadValidationService_GetBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetBatchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LeadValidationServiceServer).GetBatch(ctx, req)
}

func _LeadValidationService_GetVendor_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetVendorRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LeadValidationServiceServer).GetVendor(ctx, req)
}

func _LeadValidationService_ListVendors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListVendorsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(LeadValidationServiceServer).ListVendors(ctx, req)
}
