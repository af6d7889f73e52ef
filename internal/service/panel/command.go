package panel

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/device"
	"github.com/oshokin/briefcase-alarm/internal/display"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
	"github.com/oshokin/briefcase-alarm/internal/service/common"
)

// Options configures the connection of a panel command.
type Options struct {
	// ConfigPath to YAML settings file, defaults to standard filename if empty.
	ConfigPath string
	// PanelAddress overrides the panel address from config when specified.
	PanelAddress string
}

// DefaultShakeAxes is the accelerometer reading of a shake with no explicit axes.
//
//nolint:gochecknoglobals // Constant-like.
var DefaultShakeAxes = briefcase.Axes{X: 64, Y: -48, Z: 12}

// ParseAxes reads shake arguments: none means DefaultShakeAxes, otherwise exactly x, y and z.
func ParseAxes(args []string) (briefcase.Axes, error) {
	switch len(args) {
	case 0:
		return DefaultShakeAxes, nil
	case 3:
	default:
		return briefcase.Axes{}, fmt.Errorf("expected 0 or 3 axes, got %d", len(args))
	}

	values := make([]int, 0, len(args))

	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return briefcase.Axes{}, fmt.Errorf("parse axis %q: %w", arg, err)
		}

		values = append(values, v)
	}

	return briefcase.Axes{X: values[0], Y: values[1], Z: values[2]}, nil
}

// Connect loads settings and dials the unit. The caller closes the client.
func Connect(ctx context.Context, opts *Options) (*common.Client, error) {
	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Use panel address from options if provided, otherwise use config.
	address := cfg.PanelAddress
	if opts.PanelAddress != "" {
		address = opts.PanelAddress
	}

	clientOpts := []common.Option{common.WithCallTimeout(cfg.Timeout)}

	// Identify current user and hostname for the unit's logs.
	operator, err := common.DetectOperator()
	if err != nil {
		logger.Warnf(ctx, "Operator unknown: %v", err)
	} else {
		clientOpts = append(clientOpts, common.WithOperator(operator))
	}

	client, err := common.Dial(ctx, address, clientOpts...)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Connected to unit", "panel_address", address)

	return client, nil
}

// withClient connects, runs fn and closes the connection.
func withClient(ctx context.Context, opts *Options, fn func(*common.Client) error) error {
	client, err := Connect(ctx, opts)
	if err != nil {
		return err
	}

	// Close connection on function exit.
	defer func() {
		_ = client.Close()
	}()

	return fn(client)
}

// Press taps the named joystick button.
func Press(ctx context.Context, opts *Options, name string) error {
	button, ok := briefcase.ParseButton(name)
	if !ok {
		return fmt.Errorf("unknown button %q", name)
	}

	ctx = logger.WithName(ctx, "briefcase-panel")

	return withClient(ctx, opts, func(client *common.Client) error {
		if err := client.Press(ctx, button); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Button pressed", "button", button.String())

		return nil
	})
}

// Dial turns the dial to a normalized position in [0, 1].
func Dial(ctx context.Context, opts *Options, value float64) error {
	ctx = logger.WithName(ctx, "briefcase-panel")

	return withClient(ctx, opts, func(client *common.Client) error {
		if err := client.SetDial(ctx, value); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Dial set", "value", value, "seconds", device.DialSeconds(value))

		return nil
	})
}

// Shake sets the accelerometer reading.
func Shake(ctx context.Context, opts *Options, axes briefcase.Axes) error {
	ctx = logger.WithName(ctx, "briefcase-panel")

	return withClient(ctx, opts, func(client *common.Client) error {
		if err := client.SetMotion(ctx, axes); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Motion set", "x", axes.X, "y", axes.Y, "z", axes.Z)

		return nil
	})
}

// Status prints the unit status to w.
func Status(ctx context.Context, opts *Options, w io.Writer) error {
	ctx = logger.WithName(ctx, "briefcase-panel")

	return withClient(ctx, opts, func(client *common.Client) error {
		status, err := client.GetStatus(ctx)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, FormatStatus(status))

		return err
	})
}

// FormatStatus renders a status report with the display frame.
func FormatStatus(status *briefcase.Status) string {
	if status == nil {
		return "<nil status>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "unit %s: briefcase %s, security %s, alarm %s, pin edit %s, interval %ds\n",
		status.UnitID, status.Briefcase, status.Security, status.Alarm, status.PinEdit, status.Interval)
	sb.WriteString("leds " + FormatLEDs(status.LEDs) + "\n")
	sb.WriteString(display.Frame("Briefcase alarm", status.Lines))

	return sb.String()
}

// FormatLEDs draws lit LEDs as '*' and dark ones as '.'.
func FormatLEDs(leds []bool) string {
	var sb strings.Builder

	for _, on := range leds {
		if on {
			sb.WriteByte('*')
		} else {
			sb.WriteByte('.')
		}
	}

	return sb.String()
}
