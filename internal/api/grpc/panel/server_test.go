package panel

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// fakeService implements the panel Service interface for unit testing the transport.
type fakeService struct {
	mu sync.Mutex

	// presses records every pressed button.
	presses []briefcase.Button
	// dial holds the last dial value.
	dial float64
	// axes holds the last motion sample.
	axes briefcase.Axes
	// status is returned by Status.
	status *briefcase.Status
}

// Press records the button.
func (f *fakeService) Press(_ context.Context, b briefcase.Button) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.presses = append(f.presses, b)
}

// SetDial records the dial value.
func (f *fakeService) SetDial(_ context.Context, v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dial = v
}

// SetMotion records the axes.
func (f *fakeService) SetMotion(_ context.Context, axes briefcase.Axes) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.axes = axes
}

// Status returns the canned status.
func (f *fakeService) Status(context.Context) *briefcase.Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status.Clone()
}

// TestServer_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))
	ctx := context.Background()

	_, err := s.Press(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Press(ctx, wrapperspb.String("sideways"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	for _, v := range []float64{-0.1, 1.1, math.NaN()} {
		_, err = s.SetDial(ctx, wrapperspb.Double(v))
		require.Equal(t, codes.InvalidArgument, status.Code(err), v)
	}

	_, err = s.SetDial(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	partial, err := structpb.NewStruct(map[string]any{"x": 1, "y": 2})
	require.NoError(t, err)

	_, err = s.SetMotion(ctx, partial)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	wrongType, err := structpb.NewStruct(map[string]any{"x": 1, "y": 2, "z": "up"})
	require.NoError(t, err)

	_, err = s.SetMotion(ctx, wrongType)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	for _, v := range []float64{1e300, -1e300, math.MaxInt32 + 1, math.Inf(1)} {
		huge := &structpb.Struct{Fields: map[string]*structpb.Value{
			"x": structpb.NewNumberValue(v),
			"y": structpb.NewNumberValue(0),
			"z": structpb.NewNumberValue(0),
		}}

		_, err = s.SetMotion(ctx, huge)
		require.Equal(t, codes.InvalidArgument, status.Code(err), v)
	}
}

// TestAxesFromStruct_Range accepts whole numbers up to the int32 bound.
func TestAxesFromStruct_Range(t *testing.T) {
	t.Parallel()

	axes, err := AxesFromStruct(&structpb.Struct{Fields: map[string]*structpb.Value{
		"x": structpb.NewNumberValue(math.MaxInt32),
		"y": structpb.NewNumberValue(-math.MaxInt32),
		"z": structpb.NewNumberValue(3),
	}})
	require.NoError(t, err)
	require.Equal(t, briefcase.Axes{X: math.MaxInt32, Y: -math.MaxInt32, Z: 3}, axes)

	_, err = AxesFromStruct(&structpb.Struct{Fields: map[string]*structpb.Value{
		"x": structpb.NewNumberValue(1e300),
		"y": structpb.NewNumberValue(0),
		"z": structpb.NewNumberValue(0),
	}})
	require.ErrorIs(t, err, errFieldType)
}

// TestServer_Inputs passes valid inputs through to the service.
func TestServer_Inputs(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)
	ctx := context.Background()

	_, err := s.Press(ctx, wrapperspb.String("Up"))
	require.NoError(t, err)

	_, err = s.Press(ctx, wrapperspb.String("center"))
	require.NoError(t, err)

	_, err = s.SetDial(ctx, wrapperspb.Double(1))
	require.NoError(t, err)

	_, err = s.SetMotion(ctx, AxesToStruct(briefcase.Axes{X: -45, Y: 3, Z: 0}))
	require.NoError(t, err)

	require.Equal(t, []briefcase.Button{briefcase.ButtonUp, briefcase.ButtonCenter}, svc.presses)
	require.InDelta(t, 1.0, svc.dial, 0)
	require.Equal(t, briefcase.Axes{X: -45, Y: 3, Z: 0}, svc.axes)
}

// TestServer_GetStatus round-trips a status report through the wire struct.
func TestServer_GetStatus(t *testing.T) {
	t.Parallel()

	want := &briefcase.Status{
		UnitID:    "unit-1",
		Briefcase: briefcase.CaseMoving,
		Security:  briefcase.SecurityEnabled,
		Alarm:     briefcase.AlarmPending,
		PinEdit:   briefcase.PinEditInactive,
		Interval:  7,
		LEDs:      []bool{true, true, false, true},
		Lines:     []string{"Security   : ON", "Alarm      : PENDING"},
	}

	s := NewServer(&fakeService{status: want})

	resp, err := s.GetStatus(context.Background(), new(emptypb.Empty))
	require.NoError(t, err)

	got, err := StatusFromStruct(resp)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestStatusFromStruct_Invalid rejects reports with unknown states or wrong kinds.
func TestStatusFromStruct_Invalid(t *testing.T) {
	t.Parallel()

	base := func() *structpb.Struct {
		return StatusToStruct(&briefcase.Status{UnitID: "unit"})
	}

	s := base()
	s.Fields[FieldAlarm] = structpb.NewStringValue("ringing")
	_, err := StatusFromStruct(s)
	require.Error(t, err)

	s = base()
	delete(s.Fields, FieldInterval)
	_, err = StatusFromStruct(s)
	require.Error(t, err)

	s = base()
	s.Fields[FieldLEDs] = structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{structpb.NewStringValue("on")}})
	_, err = StatusFromStruct(s)
	require.Error(t, err)

	got, err := StatusFromStruct(base())
	require.NoError(t, err)
	require.Equal(t, "unit", got.UnitID)
}

// TestOperatorMetadata carries the operator from outgoing to incoming metadata.
func TestOperatorMetadata(t *testing.T) {
	t.Parallel()

	ctx := OutgoingContext(context.Background(), &Operator{Hostname: "desk", Username: "guard"})
	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)

	op := OperatorFromContext(metadata.NewIncomingContext(context.Background(), md))
	require.Equal(t, &Operator{Hostname: "desk", Username: "guard"}, op)
	require.Equal(t, "guard@desk", op.String())

	require.Nil(t, OperatorFromContext(context.Background()))
	require.Equal(t, "unknown", (*Operator)(nil).String())
}
