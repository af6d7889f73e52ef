package unit

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/device"
	"github.com/oshokin/briefcase-alarm/internal/device/sim"
	"github.com/oshokin/briefcase-alarm/internal/display"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
	"github.com/oshokin/briefcase-alarm/internal/queue"
	"github.com/oshokin/briefcase-alarm/internal/security"
)

// ScreenTitle is drawn above the status display.
const ScreenTitle = "Briefcase alarm"

// Unit is one briefcase unit running on simulated hardware.
// It also serves the gRPC front panel operations.
type Unit struct {
	// id identifies the unit.
	id string
	// periods holds the task cadences.
	periods config.Periods
	// queue carries events from the controller to the display.
	queue *queue.EventQueue
	// controller owns the security state.
	controller *security.Controller
	// screen is the status display.
	screen *display.Screen
	// hardware is the simulated board.
	hardware *sim.Hardware
	// buttons turns raw levels into presses.
	buttons *device.EdgeButtons
}

// New builds a unit from validated settings.
func New(cfg *config.Config) (*Unit, error) {
	q, err := queue.New(cfg.QueueCapacity)
	if err != nil {
		return nil, fmt.Errorf("create queue: %w", err)
	}

	savedPin, err := briefcase.ParsePIN(cfg.SavedPIN)
	if err != nil {
		return nil, fmt.Errorf("saved pin: %w", err)
	}

	hw := sim.NewHardware(0)

	return &Unit{
		id:      cfg.UnitID,
		periods: cfg.Periods,
		queue:   q,
		controller: security.New(q, security.Options{
			SavedPin:        savedPin,
			AlarmInterval:   uint8(cfg.AlarmInterval), //nolint:gosec // Validated to [10, 120].
			MotionThreshold: cfg.MotionThreshold,
			FlashPeriod:     cfg.FlashPeriod,
		}),
		screen:   display.NewScreen(ScreenTitle),
		hardware: hw,
		buttons:  device.NewEdgeButtons(hw.Buttons, cfg.Periods.Settle),
	}, nil
}

// Controller returns the security controller.
func (u *Unit) Controller() *security.Controller {
	return u.controller
}

// Screen returns the status display.
func (u *Unit) Screen() *display.Screen {
	return u.screen
}

// Hardware returns the simulated board.
func (u *Unit) Hardware() *sim.Hardware {
	return u.hardware
}

// Start brings up the sensor, announces the power-on state and runs every
// task until ctx is done.
func (u *Unit) Start(ctx context.Context) error {
	// Sensor failures are reported but the unit keeps running without motion.
	if !u.hardware.Accelerometer.Init() {
		logger.Warn(ctx, "Accelerometer init failed")
	} else if !u.hardware.Accelerometer.Calibrate() {
		logger.Warn(ctx, "Accelerometer calibration failed")
	}

	g, ctx := errgroup.WithContext(ctx)

	// The consumer starts first so the announcement does not stall on a full queue.
	g.Go(func() error {
		return runConsumer(logger.WithName(ctx, "display"), u.periods.Display, u.queue, u.screen)
	})

	g.Go(func() error {
		u.controller.Announce(ctx)

		g.Go(func() error {
			return runButtons(logger.WithName(ctx, "buttons"), u.periods.Buttons, u.buttons, u.controller)
		})
		g.Go(func() error {
			return runDial(logger.WithName(ctx, "dial"), u.periods.Dial, u.periods.Countdown, u.hardware.Dial, u.controller)
		})
		g.Go(func() error {
			return runMotion(logger.WithName(ctx, "motion"), u.periods.Motion, u.hardware.Accelerometer, u.controller)
		})
		g.Go(func() error {
			return runIndicator(logger.WithName(ctx, "indicator"), u.hardware.LEDs, u.controller)
		})

		return nil
	})

	return g.Wait()
}

// Press taps a joystick button.
func (u *Unit) Press(_ context.Context, b briefcase.Button) {
	u.hardware.Buttons.Tap(b)
}

// SetDial turns the dial.
func (u *Unit) SetDial(_ context.Context, value float64) {
	u.hardware.Dial.Set(value)
}

// SetMotion sets the accelerometer reading.
func (u *Unit) SetMotion(_ context.Context, axes briefcase.Axes) {
	u.hardware.Accelerometer.Set(axes)
}

// Status reports the security state, the display and the indicator.
func (u *Unit) Status(_ context.Context) *briefcase.Status {
	state := u.controller.Snapshot()
	leds := u.hardware.LEDs.State()

	return &briefcase.Status{
		UnitID:    u.id,
		Briefcase: state.Briefcase,
		Security:  state.Security,
		Alarm:     state.Alarm,
		PinEdit:   state.PinEdit,
		Interval:  state.AlarmInterval,
		LEDs:      leds[:],
		Lines:     u.screen.Lines(),
	}
}

// ApplyReload applies the settings that may change while the unit runs.
func (u *Unit) ApplyReload(ctx context.Context, cfg *config.Config) {
	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	period := u.controller.SetFlashPeriod(cfg.FlashPeriod)
	logger.InfoKV(ctx, "Settings reloaded", "log_level", logger.Level().String(), "flash_period", period)
}
