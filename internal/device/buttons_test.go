package device

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/briefcase-alarm/internal/device/sim"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// TestEdgeButtons_OncePerPress reports a press only on release and only once.
func TestEdgeButtons_OncePerPress(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		pad := sim.NewButtonPad()
		buttons := NewEdgeButtons(pad, DefaultSettleDelay)
		ctx := context.Background()

		pad.Hold(briefcase.ButtonUp)

		// Holding is a level, not a press.
		for range 3 {
			require.False(t, buttons.IsPressed(ctx, briefcase.ButtonUp))
		}

		pad.Release(briefcase.ButtonUp)

		start := time.Now()
		require.True(t, buttons.IsPressed(ctx, briefcase.ButtonUp))
		require.Equal(t, DefaultSettleDelay, time.Since(start))

		require.False(t, buttons.IsPressed(ctx, briefcase.ButtonUp))
	})
}

// TestEdgeButtons_Taps counts one press per simulated tap.
func TestEdgeButtons_Taps(t *testing.T) {
	t.Parallel()

	pad := sim.NewButtonPad()
	buttons := NewEdgeButtons(pad, 0)
	ctx := context.Background()

	pad.Tap(briefcase.ButtonLeft)
	pad.Tap(briefcase.ButtonLeft)

	presses := 0

	for range 6 {
		if buttons.IsPressed(ctx, briefcase.ButtonLeft) {
			presses++
		}
	}

	require.Equal(t, 2, presses)
	require.False(t, buttons.IsPressed(ctx, briefcase.Button(7)))
	require.False(t, buttons.Read(briefcase.ButtonLeft))
}

// TestEdgeButtons_CancelledSettle suppresses the report when the context ends during the settle delay.
func TestEdgeButtons_CancelledSettle(t *testing.T) {
	t.Parallel()

	pad := sim.NewButtonPad()
	buttons := NewEdgeButtons(pad, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pad.Tap(briefcase.ButtonDown)
	require.False(t, buttons.IsPressed(ctx, briefcase.ButtonDown))
	require.False(t, buttons.IsPressed(ctx, briefcase.ButtonDown))
}

// TestDialSeconds truncates and clamps the normalized reading.
func TestDialSeconds(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, DialSeconds(-0.5))
	require.Equal(t, 120, DialSeconds(1.5))
	require.Equal(t, 60, DialSeconds(0.5))
	require.Equal(t, 9, DialSeconds(0.08))
	require.Equal(t, 120, DialSeconds(1))
}
