package panel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "briefcase.v1.PanelService"

// Full method names used by clients.
const (
	PressMethod     = "/" + ServiceName + "/Press"
	SetDialMethod   = "/" + ServiceName + "/SetDial"
	SetMotionMethod = "/" + ServiceName + "/SetMotion"
	GetStatusMethod = "/" + ServiceName + "/GetStatus"
)

// PanelServiceServer is the server API of the front panel.
//
//nolint:revive // Mirrors the name protoc would generate.
type PanelServiceServer interface {
	// Press taps a joystick button.
	Press(ctx context.Context, button *wrapperspb.StringValue) (*emptypb.Empty, error)
	// SetDial turns the dial to a normalized position.
	SetDial(ctx context.Context, value *wrapperspb.DoubleValue) (*emptypb.Empty, error)
	// SetMotion sets the accelerometer reading.
	SetMotion(ctx context.Context, axes *structpb.Struct) (*emptypb.Empty, error)
	// GetStatus reports the unit status.
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ProtoFile is the service definition under api/proto.
const ProtoFile = "briefcase/v1/panel.proto"

// PanelServiceDesc describes the front panel service for grpc.Server.
// It is kept in sync with ProtoFile by hand; every message is a well-known type.
//
//nolint:gochecknoglobals,revive // Service descriptors are package-level by convention.
var PanelServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PanelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Press", PressMethod, PanelServiceServer.Press),
		unary("SetDial", SetDialMethod, PanelServiceServer.SetDial),
		unary("SetMotion", SetMotionMethod, PanelServiceServer.SetMotion),
		unary("GetStatus", GetStatusMethod, PanelServiceServer.GetStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoFile,
}

// RegisterPanelServiceServer registers srv on s.
func RegisterPanelServiceServer(s grpc.ServiceRegistrar, srv PanelServiceServer) {
	s.RegisterService(&PanelServiceDesc, srv)
}

// message is a pointer to a protobuf message type.
type message[T any] interface {
	*T
	proto.Message
}

// unary builds the method descriptor that decodes a request of type Req and
// calls the matching server method, passing through any interceptor.
func unary[Req any, PReq message[Req], Resp proto.Message](
	name string,
	fullMethod string,
	call func(PanelServiceServer, context.Context, PReq) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}

			impl, _ := srv.(PanelServiceServer) //nolint:errcheck // HandlerType guarantees the interface.
			if interceptor == nil {
				return call(impl, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}

			handler := func(ctx context.Context, req any) (any, error) {
				typed, _ := req.(PReq) //nolint:errcheck // Decoded above.

				return call(impl, ctx, typed)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}
