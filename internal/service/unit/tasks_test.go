package unit

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/briefcase-alarm/internal/device"
	"github.com/oshokin/briefcase-alarm/internal/device/sim"
	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/queue"
	"github.com/oshokin/briefcase-alarm/internal/security"
)

// eventLog is a sink and display that records events without blocking.
type eventLog struct {
	mu sync.Mutex

	// events holds every recorded event in order.
	events []briefcase.Event
}

// Put records e.
func (l *eventLog) Put(_ context.Context, e briefcase.Event) error {
	l.Render(e)

	return nil
}

// Render records e.
func (l *eventLog) Render(e briefcase.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
}

// kinds returns the recorded kinds and forgets them.
func (l *eventLog) kinds() []briefcase.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]briefcase.EventKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}

	l.events = nil

	return out
}

// count returns how many events of kind were recorded.
func (l *eventLog) count(kind briefcase.EventKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, e := range l.events {
		if e.Kind == kind {
			n++
		}
	}

	return n
}

// pendingController returns an armed controller whose countdown has started.
func pendingController(t *testing.T, log *eventLog, interval uint8) *security.Controller {
	t.Helper()

	ctx := context.Background()
	ctrl := security.New(log, security.Options{AlarmInterval: interval})

	require.Equal(t, security.RuleLock, ctrl.PressButton(ctx, briefcase.ButtonUp))
	require.Equal(t, security.RuleArm, ctrl.PressButton(ctx, briefcase.ButtonRight))
	require.Equal(t, security.RuleMotion, ctrl.SampleMotion(ctx, briefcase.Axes{X: 40}))
	require.Equal(t, briefcase.AlarmPending, ctrl.Snapshot().Alarm)

	log.kinds()

	return ctrl
}

// TestRunButtons reports each tap to the controller exactly once.
func TestRunButtons(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		log := new(eventLog)
		ctrl := security.New(log, security.Options{})
		pad := sim.NewButtonPad()

		done := make(chan error, 1)
		go func() {
			done <- runButtons(ctx, 100*time.Millisecond, device.NewEdgeButtons(pad, 100*time.Millisecond), ctrl)
		}()

		pad.Tap(briefcase.ButtonUp)
		time.Sleep(time.Second)
		synctest.Wait()

		require.Equal(t, []briefcase.EventKind{briefcase.EventBriefcaseLocked}, log.kinds())

		pad.Tap(briefcase.ButtonDown)
		time.Sleep(time.Second)
		synctest.Wait()

		require.Equal(t, []briefcase.EventKind{briefcase.EventBriefcaseUnlocked}, log.kinds())
		require.Equal(t, briefcase.CaseUnlocked, ctrl.Snapshot().Briefcase)

		cancel()
		require.NoError(t, <-done)
	})
}

// TestRunDial_SetsInterval emits the dial reading while disarmed.
func TestRunDial_SetsInterval(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		log := new(eventLog)
		ctrl := security.New(log, security.Options{})

		done := make(chan error, 1)
		go func() {
			done <- runDial(ctx, 100*time.Millisecond, 900*time.Millisecond, sim.NewDial(0.25), ctrl)
		}()

		time.Sleep(250 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 3, log.count(briefcase.EventTimeInterval))
		require.Equal(t, uint8(30), ctrl.Snapshot().AlarmInterval)

		cancel()
		require.NoError(t, <-done)
	})
}

// TestRunDial_CountdownCadence slows to one step per second while counting down.
func TestRunDial_CountdownCadence(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		log := new(eventLog)
		ctrl := pendingController(t, log, 10)

		done := make(chan error, 1)
		go func() {
			done <- runDial(ctx, 100*time.Millisecond, 900*time.Millisecond, sim.NewDial(0.5), ctrl)
		}()

		// Steps at 0s, 1s and 2s.
		time.Sleep(2500 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 3, log.count(briefcase.EventCountdownValue))
		require.Equal(t, uint8(7), ctrl.Snapshot().AlarmInterval)

		time.Sleep(10 * time.Second)
		synctest.Wait()

		require.Equal(t, 1, log.count(briefcase.EventAlarmOn))
		require.True(t, ctrl.AlarmOn())

		cancel()
		require.NoError(t, <-done)
	})
}

// TestRunMotion trips the alarm when the case is shaken while armed.
func TestRunMotion(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		log := new(eventLog)
		ctrl := security.New(log, security.Options{})
		ctrl.PressButton(ctx, briefcase.ButtonUp)
		ctrl.PressButton(ctx, briefcase.ButtonRight)
		log.kinds()

		acc := sim.NewAccelerometer()
		require.True(t, acc.Init())

		done := make(chan error, 1)
		go func() {
			done <- runMotion(ctx, 200*time.Millisecond, acc, ctrl)
		}()

		time.Sleep(time.Second)
		synctest.Wait()
		require.Empty(t, log.kinds())

		acc.Set(briefcase.Axes{Z: -60})
		time.Sleep(time.Second)
		synctest.Wait()

		require.Equal(t, []briefcase.EventKind{briefcase.EventAlarmPending, briefcase.EventBriefcaseMoving}, log.kinds())

		cancel()
		require.NoError(t, <-done)
	})
}

// TestRunConsumer renders queued events in order and paces itself.
func TestRunConsumer(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		q, err := queue.New(queue.DefaultCapacity)
		require.NoError(t, err)

		screen := new(eventLog)

		done := make(chan error, 1)
		go func() {
			done <- runConsumer(ctx, 100*time.Millisecond, q, screen)
		}()

		want := []briefcase.EventKind{
			briefcase.EventBriefcaseLocked,
			briefcase.EventSecurityEnabled,
			briefcase.EventDisplayedPin,
			briefcase.EventPosition,
			briefcase.EventAlarmPending,
			briefcase.EventBriefcaseMoving,
		}

		for _, kind := range want {
			require.NoError(t, q.Put(ctx, briefcase.NewEvent(kind)))
		}

		// One event is rendered per pause.
		synctest.Wait()
		require.Zero(t, screen.count(briefcase.EventBriefcaseMoving))

		time.Sleep(time.Second)
		synctest.Wait()

		require.Equal(t, want, screen.kinds())
		require.Zero(t, q.Len())

		cancel()
		require.NoError(t, <-done)
	})
}

// TestRunIndicator flashes only while the alarm is on, at the current flash period.
func TestRunIndicator(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		log := new(eventLog)
		ctrl := pendingController(t, log, 10)
		leds := sim.NewLEDBank()

		done := make(chan error, 1)
		go func() {
			done <- runIndicator(ctx, leds, ctrl)
		}()

		time.Sleep(2250 * time.Millisecond)
		synctest.Wait()
		require.Zero(t, leds.Toggles())

		for range 10 {
			ctrl.SampleDial(ctx, 0)
		}

		require.True(t, ctrl.AlarmOn())

		// The indicator wakes at 2.5s and every 500ms after.
		time.Sleep(2100 * time.Millisecond)
		synctest.Wait()
		require.Equal(t, 4, leds.Toggles())

		ctrl.SetFlashPeriod(100 * time.Millisecond)
		time.Sleep(time.Second)
		synctest.Wait()
		require.Greater(t, leds.Toggles(), 8)

		cancel()
		require.NoError(t, <-done)
	})
}
