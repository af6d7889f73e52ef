package panel

import (
	"context"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
)

// Service abstracts the front panel operations the transport layer depends on.
type Service interface {
	Press(ctx context.Context, button briefcase.Button)
	SetDial(ctx context.Context, value float64)
	SetMotion(ctx context.Context, axes briefcase.Axes)
	Status(ctx context.Context) *briefcase.Status
}

// Server implements the PanelService gRPC API.
type Server struct {
	// service drives the unit's hardware.
	service Service
}

// Compile-time check that Server satisfies the service interface.
var _ PanelServiceServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Press taps the named joystick button.
func (s *Server) Press(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	button, ok := briefcase.ParseButton(req.GetValue())
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "unknown button %q", req.GetValue())
	}

	logger.DebugKV(ctx, "Panel button", "button", button, "operator", OperatorFromContext(ctx))
	s.service.Press(ctx, button)

	return new(emptypb.Empty), nil
}

// SetDial turns the dial; the value must be within [0, 1].
func (s *Server) SetDial(ctx context.Context, req *wrapperspb.DoubleValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	value := req.GetValue()
	if math.IsNaN(value) || value < 0 || value > 1 {
		return nil, status.Errorf(codes.InvalidArgument, "dial value %v is outside [0, 1]", value)
	}

	logger.DebugKV(ctx, "Panel dial", "value", value, "operator", OperatorFromContext(ctx))
	s.service.SetDial(ctx, value)

	return new(emptypb.Empty), nil
}

// SetMotion sets the accelerometer axes.
func (s *Server) SetMotion(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	axes, err := AxesFromStruct(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid axes: %v", err)
	}

	logger.DebugKV(ctx, "Panel motion", "axes", axes, "operator", OperatorFromContext(ctx))
	s.service.SetMotion(ctx, axes)

	return new(emptypb.Empty), nil
}

// GetStatus reports the unit status.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return StatusToStruct(s.service.Status(ctx)), nil
}
