package security

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
	"github.com/oshokin/briefcase-alarm/internal/logger"
	"github.com/oshokin/briefcase-alarm/internal/metrics"
)

// Sink receives the events a transition produces, in order.
// The event queue is the production sink.
type Sink interface {
	Put(ctx context.Context, e briefcase.Event) error
}

// Options configures the power-on state of the controller.
type Options struct {
	// SavedPin is the PIN that disarms the unit.
	SavedPin briefcase.PIN
	// AlarmInterval is the countdown length until the dial is read.
	AlarmInterval uint8
	// MotionThreshold is the per-axis magnitude that counts as movement.
	MotionThreshold int
	// FlashPeriod is the initial indicator blink period.
	FlashPeriod time.Duration
}

// DefaultMotionThreshold is the accelerometer magnitude that trips the alarm.
const DefaultMotionThreshold = 40

// Controller owns the security state and is its only mutation point.
type Controller struct {
	// sink receives emitted events.
	sink Sink
	// motionThreshold is the per-axis magnitude that counts as movement.
	motionThreshold int

	// mu serialises transitions. It is held while events are pushed so that
	// the events of concurrent transitions never interleave in the sink.
	mu sync.Mutex
	// state is the single security aggregate.
	state briefcase.State
}

// New creates a controller in the power-on state.
func New(sink Sink, opts Options) *Controller {
	savedPin := opts.SavedPin
	if !savedPin.Valid() {
		savedPin, _ = briefcase.ParsePIN(briefcase.DefaultSavedPIN) //nolint:errcheck // Constant is valid.
	}

	interval := opts.AlarmInterval
	if interval == 0 {
		interval = briefcase.DefaultAlarmInterval
	}

	threshold := opts.MotionThreshold
	if threshold <= 0 {
		threshold = DefaultMotionThreshold
	}

	state := briefcase.NewState(savedPin, interval)
	if opts.FlashPeriod > 0 {
		state.FlashPeriod = briefcase.ClampFlashPeriod(opts.FlashPeriod)
	}

	return &Controller{
		sink:            sink,
		motionThreshold: threshold,
		state:           state,
	}
}

// Announce pushes the power-on status so the display starts consistent with the state.
func (c *Controller) Announce(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.push(ctx, []briefcase.Event{
		briefcase.NewEvent(briefcase.EventSecurityDisabled),
		briefcase.NewEvent(briefcase.EventAlarmOff),
		briefcase.NewValueEvent(briefcase.EventTimeInterval, c.state.AlarmInterval),
		briefcase.NewEvent(briefcase.EventBriefcaseUnlocked),
		briefcase.NewEvent(briefcase.EventDisplayClear),
	})
}

// PressButton handles one completed press of b and returns the rule applied, or "" if dropped.
func (c *Controller) PressButton(ctx context.Context, b briefcase.Button) string {
	if !b.Valid() {
		return ""
	}

	return c.dispatch(ctx, buttonTriggers[b], input{})
}

// SampleDial handles one dial reading in seconds and returns the rule applied, or "" if dropped.
// While the alarm is pending the reading is ignored and the sample acts as a countdown tick.
func (c *Controller) SampleDial(ctx context.Context, seconds int) string {
	return c.dispatch(ctx, TriggerDial, input{dial: seconds})
}

// SampleMotion handles one accelerometer sample and returns the rule applied, or "" if dropped.
func (c *Controller) SampleMotion(ctx context.Context, axes briefcase.Axes) string {
	return c.dispatch(ctx, TriggerMotion, input{axes: axes})
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() briefcase.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// AlarmOn reports whether the alarm has fired.
func (c *Controller) AlarmOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Alarm == briefcase.AlarmOn
}

// FlashPeriod returns the indicator blink period.
func (c *Controller) FlashPeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.FlashPeriod
}

// SetFlashPeriod changes the indicator blink period, clamped to the supported range.
func (c *Controller) SetFlashPeriod(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.FlashPeriod = briefcase.ClampFlashPeriod(d)

	return c.state.FlashPeriod
}

// dispatch applies the first matching rule and pushes its events.
func (c *Controller) dispatch(ctx context.Context, trigger Trigger, in input) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := match(trigger, &c.state)
	if !ok {
		metrics.InputsIgnored.WithLabelValues(trigger.String()).Inc()
		return ""
	}

	st := &step{
		state:           &c.state,
		in:              in,
		motionThreshold: c.motionThreshold,
	}
	r.apply(st)

	metrics.TransitionsApplied.WithLabelValues(r.name).Inc()

	if c.state.Alarm == briefcase.AlarmOn {
		metrics.AlarmActive.Set(1)
	} else {
		metrics.AlarmActive.Set(0)
	}

	if len(st.events) > 0 {
		logger.DebugKV(ctx, "Transition applied",
			"rule", r.name,
			"trigger", trigger.String(),
			"briefcase", c.state.Briefcase.String(),
			"security", c.state.Security.String(),
			"alarm", c.state.Alarm.String(),
			"pin_edit", c.state.PinEdit.String(),
		)
	}

	c.push(ctx, st.events)

	return r.name
}

// push forwards events to the sink in order. Must be called with mu held.
func (c *Controller) push(ctx context.Context, events []briefcase.Event) {
	for i, e := range events {
		if err := c.sink.Put(ctx, e); err != nil {
			logger.WarnKV(ctx, "Events not delivered", "event", e.String(), "undelivered", len(events)-i, "error", err)
			return
		}

		metrics.EventsEnqueued.WithLabelValues(e.Kind.String()).Inc()
	}
}
