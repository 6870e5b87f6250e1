package service

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "ledger.LedgerService"

// LedgerServiceClient is the client API for the ledger service.
type LedgerServiceClient interface {
	SetTransaction(ctx context.Context, in *SetTransactionRequest, opts ...grpc.CallOption) (*SetTransactionResponse, error)
	Mine(ctx context.Context, in *MineRequest, opts ...grpc.CallOption) (*MineResponse, error)
	GetChain(ctx context.Context, in *GetChainRequest, opts ...grpc.CallOption) (*GetChainResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

// Every call goes out with the JSON codec.
func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *ledgerServiceClient) SetTransaction(ctx context.Context, in *SetTransactionRequest, opts ...grpc.CallOption) (*SetTransactionResponse, error) {
	out := new(SetTransactionResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/SetTransaction", in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) Mine(ctx context.Context, in *MineRequest, opts ...grpc.CallOption) (*MineResponse, error) {
	out := new(MineResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/Mine", in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetChain(ctx context.Context, in *GetChainRequest, opts ...grpc.CallOption) (*GetChainResponse, error) {
	out := new(GetChainResponse)
	err := c.cc.Invoke(ctx, "/"+serviceName+"/GetChain", in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LedgerServiceServer is the server API for the ledger service.
type LedgerServiceServer interface {
	SetTransaction(context.Context, *SetTransactionRequest) (*SetTransactionResponse, error)
	Mine(context.Context, *MineRequest) (*MineResponse, error)
	GetChain(context.Context, *GetChainRequest) (*GetChainResponse, error)
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

func _LedgerService_SetTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SetTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).SetTransaction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/SetTransaction",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).SetTransaction(ctx, req.(*SetTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_Mine_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MineRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).Mine(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Mine",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).Mine(ctx, req.(*MineRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LedgerService_GetChain_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetChainRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServiceServer).GetChain(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetChain",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServiceServer).GetChain(ctx, req.(*GetChainRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LedgerService_ServiceDesc describes the ledger service for grpc.Server.RegisterService.
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetTransaction",
			Handler:    _LedgerService_SetTransaction_Handler,
		},
		{
			MethodName: "Mine",
			Handler:    _LedgerService_Mine_Handler,
		},
		{
			MethodName: "GetChain",
			Handler:    _LedgerService_GetChain_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger",
}
