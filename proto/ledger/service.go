package ledger

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	LedgerService_SendMessage_FullMethodName     = "/ledger.v1.LedgerService/SendMessage"
	LedgerService_GetMessage_FullMethodName      = "/ledger.v1.LedgerService/GetMessage"
	LedgerService_MarkAsRead_FullMethodName      = "/ledger.v1.LedgerService/MarkAsRead"
	LedgerService_GetMessageCount_FullMethodName = "/ledger.v1.LedgerService/GetMessageCount"
	LedgerService_ListInbox_FullMethodName       = "/ledger.v1.LedgerService/ListInbox"

	AuthService_Register_FullMethodName = "/ledger.v1.AuthService/Register"
	AuthService_Login_FullMethodName    = "/ledger.v1.AuthService/Login"
)

type LedgerServiceServer interface {
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	GetMessage(context.Context, *GetMessageRequest) (*GetMessageResponse, error)
	MarkAsRead(context.Context, *MarkAsReadRequest) (*MarkAsReadResponse, error)
	GetMessageCount(context.Context, *GetMessageCountRequest) (*GetMessageCountResponse, error)
	ListInbox(context.Context, *ListInboxRequest) (*ListInboxResponse, error)
}

// UnimplementedLedgerServiceServer can be embedded to stay forward compatible.
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedLedgerServiceServer) GetMessage(context.Context, *GetMessageRequest) (*GetMessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMessage not implemented")
}
func (UnimplementedLedgerServiceServer) MarkAsRead(context.Context, *MarkAsReadRequest) (*MarkAsReadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkAsRead not implemented")
}
func (UnimplementedLedgerServiceServer) GetMessageCount(context.Context, *GetMessageCountRequest) (*GetMessageCountResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMessageCount not implemented")
}
func (UnimplementedLedgerServiceServer) ListInbox(context.Context, *ListInboxRequest) (*ListInboxResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListInbox not implemented")
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ledger.v1.LedgerService",
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendMessage",
			Handler: unary(LedgerService_SendMessage_FullMethodName, func(srv any, ctx context.Context, in *SendMessageRequest) (any, error) {
				return srv.(LedgerServiceServer).SendMessage(ctx, in)
			}),
		},
		{
			MethodName: "GetMessage",
			Handler: unary(LedgerService_GetMessage_FullMethodName, func(srv any, ctx context.Context, in *GetMessageRequest) (any, error) {
				return srv.(LedgerServiceServer).GetMessage(ctx, in)
			}),
		},
		{
			MethodName: "MarkAsRead",
			Handler: unary(LedgerService_MarkAsRead_FullMethodName, func(srv any, ctx context.Context, in *MarkAsReadRequest) (any, error) {
				return srv.(LedgerServiceServer).MarkAsRead(ctx, in)
			}),
		},
		{
			MethodName: "GetMessageCount",
			Handler: unary(LedgerService_GetMessageCount_FullMethodName, func(srv any, ctx context.Context, in *GetMessageCountRequest) (any, error) {
				return srv.(LedgerServiceServer).GetMessageCount(ctx, in)
			}),
		},
		{
			MethodName: "ListInbox",
			Handler: unary(LedgerService_ListInbox_FullMethodName, func(srv any, ctx context.Context, in *ListInboxRequest) (any, error) {
				return srv.(LedgerServiceServer).ListInbox(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
}

type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*AuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthService_ServiceDesc, srv)
}

var AuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ledger.v1.AuthService",
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unary(AuthService_Register_FullMethodName, func(srv any, ctx context.Context, in *RegisterRequest) (any, error) {
				return srv.(AuthServiceServer).Register(ctx, in)
			}),
		},
		{
			MethodName: "Login",
			Handler: unary(AuthService_Login_FullMethodName, func(srv any, ctx context.Context, in *LoginRequest) (any, error) {
				return srv.(AuthServiceServer).Login(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}

// unary adapts a typed call into a grpc.MethodHandler, running the
// server interceptor chain when one is installed.
func unary[Req any](fullMethod string, call func(srv any, ctx context.Context, in *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type LedgerServiceClient interface {
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*GetMessageResponse, error)
	MarkAsRead(ctx context.Context, in *MarkAsReadRequest, opts ...grpc.CallOption) (*MarkAsReadResponse, error)
	GetMessageCount(ctx context.Context, in *GetMessageCountRequest, opts ...grpc.CallOption) (*GetMessageCountResponse, error)
	ListInbox(ctx context.Context, in *ListInboxRequest, opts ...grpc.CallOption) (*ListInboxResponse, error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

func (c *ledgerServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	out := new(SendMessageResponse)
	if err := c.cc.Invoke(ctx, LedgerService_SendMessage_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetMessage(ctx context.Context, in *GetMessageRequest, opts ...grpc.CallOption) (*GetMessageResponse, error) {
	out := new(GetMessageResponse)
	if err := c.cc.Invoke(ctx, LedgerService_GetMessage_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) MarkAsRead(ctx context.Context, in *MarkAsReadRequest, opts ...grpc.CallOption) (*MarkAsReadResponse, error) {
	out := new(MarkAsReadResponse)
	if err := c.cc.Invoke(ctx, LedgerService_MarkAsRead_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) GetMessageCount(ctx context.Context, in *GetMessageCountRequest, opts ...grpc.CallOption) (*GetMessageCountResponse, error) {
	out := new(GetMessageCountResponse)
	if err := c.cc.Invoke(ctx, LedgerService_GetMessageCount_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerServiceClient) ListInbox(ctx context.Context, in *ListInboxRequest, opts ...grpc.CallOption) (*ListInboxResponse, error) {
	out := new(ListInboxResponse)
	if err := c.cc.Invoke(ctx, LedgerService_ListInbox_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

type AuthServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc}
}

func (c *authServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, AuthService_Register_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	out := new(AuthResponse)
	if err := c.cc.Invoke(ctx, AuthService_Login_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
