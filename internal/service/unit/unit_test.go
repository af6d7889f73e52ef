package unit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/briefcase-alarm/internal/config"
	"github.com/oshokin/briefcase-alarm/internal/display"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
)

// fastConfig returns validated settings with every period at one millisecond.
func fastConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		PanelAddress: "127.0.0.1:50051",
		UnitID:       "4f1c2a9e-8b7d-4e3f-9a6b-2c5d8e1f0a7b",
		Periods: config.Periods{
			Buttons:   time.Millisecond,
			Dial:      time.Millisecond,
			Countdown: time.Millisecond,
			Motion:    time.Millisecond,
			Display:   time.Millisecond,
			Settle:    time.Millisecond,
		},
		FlashPeriod: time.Millisecond,
	}
	require.NoError(t, config.Validate(cfg))

	return cfg
}

// line returns a trimmed status display row.
func line(u *Unit, l display.Line) string {
	return strings.TrimRight(u.Screen().Line(l), " ")
}

// TestNew_RejectsBadSettings fails on settings that skipped validation.
func TestNew_RejectsBadSettings(t *testing.T) {
	t.Parallel()

	_, err := New(&config.Config{QueueCapacity: 0, SavedPIN: "1000"})
	require.Error(t, err)

	_, err = New(&config.Config{QueueCapacity: 4, SavedPIN: "10"})
	require.Error(t, err)
}

// TestUnit_Session arms the unit, lets the alarm go off and disarms it with the PIN.
func TestUnit_Session(t *testing.T) {
	t.Parallel()

	u, err := New(fastConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- u.Start(ctx)
	}()

	const wait, tick = 5 * time.Second, 5 * time.Millisecond

	// Power-on announcement.
	require.Eventually(t, func() bool {
		return line(u, display.LineCase) == "Case       : UNLOCKED" &&
			line(u, display.LineInterval) == "Interval   : 10"
	}, wait, tick)
	require.Equal(t, "Security   : OFF", line(u, display.LineSecurity))

	// Lock and arm.
	u.Press(ctx, briefcase.ButtonUp)
	require.Eventually(t, func() bool { return u.Status(ctx).Briefcase == briefcase.CaseLocked }, wait, tick)

	u.Press(ctx, briefcase.ButtonRight)
	require.Eventually(t, func() bool { return line(u, display.LineSecurity) == "Security   : ON" }, wait, tick)

	// Shake until the countdown runs out.
	u.SetMotion(ctx, briefcase.Axes{X: 55})
	require.Eventually(t, func() bool {
		status := u.Status(ctx)

		return status.Alarm == briefcase.AlarmOn && line(u, display.LineAlarm) == "Alarm      : ON"
	}, wait, tick)
	require.Eventually(t, func() bool { return u.Hardware().LEDs.Toggles() > 0 }, wait, tick)
	require.Equal(t, "Case       : LOCKED", line(u, display.LineCase))
	require.Equal(t, "             MOVING", line(u, display.LineMotion))

	// Enter 1000 and confirm.
	u.Press(ctx, briefcase.ButtonUp)
	require.Eventually(t, func() bool { return line(u, display.LineCode) == "Code       : 1 0 0 0" }, wait, tick)

	u.Press(ctx, briefcase.ButtonCenter)
	require.Eventually(t, func() bool {
		status := u.Status(ctx)

		return status.Security == briefcase.SecurityDisabled && status.Alarm == briefcase.AlarmOff
	}, wait, tick)

	status := u.Status(ctx)
	require.Equal(t, briefcase.CaseLocked, status.Briefcase)
	require.Equal(t, "4f1c2a9e-8b7d-4e3f-9a6b-2c5d8e1f0a7b", status.UnitID)
	require.Len(t, status.LEDs, 4)
	require.NotEmpty(t, status.Lines)

	cancel()
	require.NoError(t, <-done)
}

// TestUnit_ApplyReload changes the flash period and the log level.
func TestUnit_ApplyReload(t *testing.T) { //nolint:paralleltest // Changes the global log level.
	before := logger.Level()
	t.Cleanup(func() { logger.SetLevel(before) })

	u, err := New(fastConfig(t))
	require.NoError(t, err)

	u.ApplyReload(context.Background(), &config.Config{LogLevel: "error", FlashPeriod: 300 * time.Millisecond})

	require.Equal(t, 300*time.Millisecond, u.Controller().FlashPeriod())
	require.Equal(t, zapcore.ErrorLevel, logger.Level())

	// An empty level leaves the current one alone.
	u.ApplyReload(context.Background(), &config.Config{FlashPeriod: 5 * time.Second})
	require.Equal(t, briefcase.MaxFlashPeriod, u.Controller().FlashPeriod())
	require.Equal(t, zapcore.ErrorLevel, logger.Level())
}

// TestResolveListenAddress prefers the override and otherwise binds the configured port.
func TestResolveListenAddress(t *testing.T) {
	t.Parallel()

	addr, err := resolveListenAddress("unit.local:7000", "")
	require.NoError(t, err)
	require.Equal(t, ":7000", addr)

	addr, err = resolveListenAddress("unit.local:7000", "127.0.0.1:7100")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:7100", addr)

	_, err = resolveListenAddress("", "")
	require.ErrorIs(t, err, ErrNoPanelAddress)

	_, err = resolveListenAddress("no-port", "")
	require.Error(t, err)
}
