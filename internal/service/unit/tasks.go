package unit

import (
	"context"
	"time"

	"github.com/oshokin/briefcase-alarm/internal/device"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/metrics"
	"github.com/oshokin/briefcase-alarm/internal/queue"
	"github.com/oshokin/briefcase-alarm/internal/security"
)

// PressDetector reports completed button presses.
type PressDetector interface {
	IsPressed(ctx context.Context, b briefcase.Button) bool
}

// sleep waits for d or until ctx is done. It reports whether the wait completed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// runButtons polls the joystick every period and reports each press to the controller.
func runButtons(ctx context.Context, period time.Duration, buttons PressDetector, ctrl *security.Controller) error {
	for {
		for _, b := range briefcase.PollOrder {
			if buttons.IsPressed(ctx, b) {
				ctrl.PressButton(ctx, b)
			}
		}

		if !sleep(ctx, period) {
			return nil
		}
	}
}

// runDial samples the dial every period. After each countdown step it waits
// an extra countdown delay so that one step takes about a second.
func runDial(ctx context.Context, period, countdown time.Duration, dial device.DialSource, ctrl *security.Controller) error {
	for {
		if ctrl.SampleDial(ctx, device.DialSeconds(dial.ReadNormalized())) == security.RuleCountdown {
			if !sleep(ctx, countdown) {
				return nil
			}
		}

		if !sleep(ctx, period) {
			return nil
		}
	}
}

// runMotion samples the accelerometer every period.
func runMotion(ctx context.Context, period time.Duration, motion device.MotionSource, ctrl *security.Controller) error {
	for {
		ctrl.SampleMotion(ctx, motion.ReadAxes())

		if !sleep(ctx, period) {
			return nil
		}
	}
}

// runConsumer renders queued events in order, pausing after each one.
func runConsumer(ctx context.Context, pause time.Duration, q *queue.EventQueue, display device.StatusDisplay) error {
	for {
		e, err := q.Get(ctx)
		if err != nil {
			return nil //nolint:nilerr // Cancellation is the normal way out.
		}

		display.Render(e)
		metrics.EventsRendered.WithLabelValues(e.Kind.String()).Inc()
		metrics.QueueDepth.Set(float64(q.Len()))

		if !sleep(ctx, pause) {
			return nil
		}
	}
}

// runIndicator flips the alarm lights every flash period while the alarm is on.
// The period is read on every cycle so that reloads apply at once.
func runIndicator(ctx context.Context, indicator device.AlarmIndicator, ctrl *security.Controller) error {
	for {
		if ctrl.AlarmOn() {
			indicator.Toggle()
		}

		if !sleep(ctx, ctrl.FlashPeriod()) {
			return nil
		}
	}
}
