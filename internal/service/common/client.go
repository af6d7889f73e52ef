//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/briefcase-alarm/internal/api/grpc/panel"
	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/version"
)

// Client wraps the gRPC PanelService with typed helpers.
type Client struct {
	// conn is the underlying gRPC connection to the unit.
	conn *grpc.ClientConn
	// operator is attached to every call when set.
	operator *panel.Operator

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithOperator identifies the person at the panel on every call.
func WithOperator(op *panel.Operator) Option {
	return func(c *Client) {
		c.operator = op
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errDialRange is returned for dial values outside [0, 1].
	errDialRange = errors.New("dial value must be within [0, 1]")
)

// Dial establishes a gRPC connection to the unit's front panel.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	// Use the non-context NewClient API recommended by grpc-go
	// (DialContext is deprecated as of grpc-go v1.60+).
	conn, err := grpc.NewClient(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUserAgent(version.UserAgent("briefcase-panel")),
	)
	if err != nil {
		return nil, fmt.Errorf("dial briefcase unit: %w", err)
	}

	client := &Client{
		conn:        conn,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Press taps a joystick button.
func (c *Client) Press(ctx context.Context, button briefcase.Button) error {
	if !button.Valid() {
		return fmt.Errorf("press: unknown button %s", button)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, panel.PressMethod, wrapperspb.String(button.String()), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("press %s: %w", button, err)
	}

	return nil
}

// SetDial turns the dial to a normalized position in [0, 1].
func (c *Client) SetDial(ctx context.Context, value float64) error {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return errDialRange
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, panel.SetDialMethod, wrapperspb.Double(value), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("set dial: %w", err)
	}

	return nil
}

// SetMotion sets the accelerometer reading.
func (c *Client) SetMotion(ctx context.Context, axes briefcase.Axes) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if err := c.conn.Invoke(callCtx, panel.SetMotionMethod, panel.AxesToStruct(axes), new(emptypb.Empty)); err != nil {
		return fmt.Errorf("set motion: %w", err)
	}

	return nil
}

// GetStatus retrieves the unit status.
func (c *Client) GetStatus(ctx context.Context) (*briefcase.Status, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(callCtx, panel.GetStatusMethod, new(emptypb.Empty), resp); err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	status, err := panel.StatusFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("decode status: %w", err)
	}

	return status, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The operator, if
// any, travels as call metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = panel.OutgoingContext(ctx, c.operator)

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
