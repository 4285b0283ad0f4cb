// Package ledpb declares the LED control gRPC service. Messages are
// protobuf well-known types, so the service needs no generated code:
//
//	LEDOn      UInt32Value -> BoolValue
//	LEDOff     UInt32Value -> BoolValue
//	Blink      UInt32Value -> Empty
//	Run        UInt32Value -> Struct (run summary; 0 cycles = server default)
//	RunScript  Struct{name, source} -> Struct (run summary)
//	GetHistory Struct{start_time, end_time} -> Struct{events}
//	GetLatest  Empty -> Struct (event)
package ledpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "led.v1.LEDService"

const (
	LEDService_LEDOn_FullMethodName      = "/" + ServiceName + "/LEDOn"
	LEDService_LEDOff_FullMethodName     = "/" + ServiceName + "/LEDOff"
	LEDService_Blink_FullMethodName      = "/" + ServiceName + "/Blink"
	LEDService_Run_FullMethodName        = "/" + ServiceName + "/Run"
	LEDService_RunScript_FullMethodName  = "/" + ServiceName + "/RunScript"
	LEDService_GetHistory_FullMethodName = "/" + ServiceName + "/GetHistory"
	LEDService_GetLatest_FullMethodName  = "/" + ServiceName + "/GetLatest"
)

// LEDServiceServer is the server API for the LED service
type LEDServiceServer interface {
	LEDOn(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error)
	LEDOff(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error)
	Blink(context.Context, *wrapperspb.UInt32Value) (*emptypb.Empty, error)
	Run(context.Context, *wrapperspb.UInt32Value) (*structpb.Struct, error)
	RunScript(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetLatest(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedLEDServiceServer can be embedded for forward compatibility
type UnimplementedLEDServiceServer struct{}

func (UnimplementedLEDServiceServer) LEDOn(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method LEDOn not implemented")
}
func (UnimplementedLEDServiceServer) LEDOff(context.Context, *wrapperspb.UInt32Value) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method LEDOff not implemented")
}
func (UnimplementedLEDServiceServer) Blink(context.Context, *wrapperspb.UInt32Value) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Blink not implemented")
}
func (UnimplementedLEDServiceServer) Run(context.Context, *wrapperspb.UInt32Value) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Run not implemented")
}
func (UnimplementedLEDServiceServer) RunScript(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RunScript not implemented")
}
func (UnimplementedLEDServiceServer) GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHistory not implemented")
}
func (UnimplementedLEDServiceServer) GetLatest(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetLatest not implemented")
}

// RegisterLEDServiceServer registers srv with s
func RegisterLEDServiceServer(s grpc.ServiceRegistrar, srv LEDServiceServer) {
	s.RegisterService(&LEDService_ServiceDesc, srv)
}

// unary builds a method handler for a request type Req
func unary[Req any](method string, call func(LEDServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LEDServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LEDServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LEDService_ServiceDesc is the grpc.ServiceDesc for the LED service
var LEDService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LEDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "LEDOn",
			Handler: unary(LEDService_LEDOn_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *wrapperspb.UInt32Value) (any, error) {
				return s.LEDOn(ctx, in)
			}),
		},
		{
			MethodName: "LEDOff",
			Handler: unary(LEDService_LEDOff_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *wrapperspb.UInt32Value) (any, error) {
				return s.LEDOff(ctx, in)
			}),
		},
		{
			MethodName: "Blink",
			Handler: unary(LEDService_Blink_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *wrapperspb.UInt32Value) (any, error) {
				return s.Blink(ctx, in)
			}),
		},
		{
			MethodName: "Run",
			Handler: unary(LEDService_Run_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *wrapperspb.UInt32Value) (any, error) {
				return s.Run(ctx, in)
			}),
		},
		{
			MethodName: "RunScript",
			Handler: unary(LEDService_RunScript_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.RunScript(ctx, in)
			}),
		},
		{
			MethodName: "GetHistory",
			Handler: unary(LEDService_GetHistory_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.GetHistory(ctx, in)
			}),
		},
		{
			MethodName: "GetLatest",
			Handler: unary(LEDService_GetLatest_FullMethodName, func(s LEDServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.GetLatest(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "led/v1/led.proto",
}
