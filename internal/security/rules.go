package security

import (
	"fmt"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// Trigger is the kind of input a rule reacts to.
type Trigger uint8

// Input triggers.
const (
	TriggerUp Trigger = iota
	TriggerDown
	TriggerRight
	TriggerLeft
	TriggerCenter
	TriggerDial
	TriggerMotion
)

// String returns the trigger name used in logs and metrics.
func (t Trigger) String() string {
	switch t {
	case TriggerUp:
		return "button_up"
	case TriggerDown:
		return "button_down"
	case TriggerRight:
		return "button_right"
	case TriggerLeft:
		return "button_left"
	case TriggerCenter:
		return "button_center"
	case TriggerDial:
		return "dial_sample"
	case TriggerMotion:
		return "motion_sample"
	default:
		return fmt.Sprintf("trigger(%d)", uint8(t))
	}
}

// buttonTriggers maps joystick buttons to triggers.
//
//nolint:gochecknoglobals // Lookup table.
var buttonTriggers = [briefcase.ButtonCount]Trigger{
	briefcase.ButtonLeft:   TriggerLeft,
	briefcase.ButtonRight:  TriggerRight,
	briefcase.ButtonUp:     TriggerUp,
	briefcase.ButtonDown:   TriggerDown,
	briefcase.ButtonCenter: TriggerCenter,
}

// Rule names reported by the handlers.
const (
	RuleLock            = "lock"
	RuleUnlock          = "unlock"
	RuleArm             = "arm"
	RuleDisarm          = "disarm"
	RuleDigitUp         = "digit_up"
	RuleDigitDown       = "digit_down"
	RuleCursorLeft      = "cursor_left"
	RuleCursorRight     = "cursor_right"
	RuleEditEnter       = "edit_enter"
	RuleEditExit        = "edit_exit"
	RuleEditDigitUp     = "edit_digit_up"
	RuleEditDigitDown   = "edit_digit_down"
	RuleEditCursorLeft  = "edit_cursor_left"
	RuleEditCursorRight = "edit_cursor_right"
	RuleSetInterval     = "set_interval"
	RuleCountdown       = "countdown"
	RuleMotion          = "motion"
)

// input carries the payload of one sample.
type input struct {
	// dial is the dial reading in seconds.
	dial int
	// axes is the motion sample.
	axes briefcase.Axes
}

// step is the working area of one applied rule.
type step struct {
	// state is mutated in place.
	state *briefcase.State
	// in is the sample that fired the rule.
	in input
	// motionThreshold is the per-axis magnitude that counts as movement.
	motionThreshold int
	// events collects emissions in order.
	events []briefcase.Event
}

// emit appends events in order.
func (s *step) emit(events ...briefcase.Event) {
	s.events = append(s.events, events...)
}

// rule is one guarded transition.
type rule struct {
	name    string
	trigger Trigger
	guard   func(s *briefcase.State) bool
	apply   func(s *step)
}

// Guard building blocks. Multi-state guards compare against every listed state.

func caseIs(s *briefcase.State, states ...briefcase.CaseState) bool {
	for _, want := range states {
		if s.Briefcase == want {
			return true
		}
	}

	return false
}

// idle holds when the unit is disarmed, the alarm is off and the PIN is not being edited.
func idle(s *briefcase.State) bool {
	return s.Security == briefcase.SecurityDisabled &&
		s.Alarm == briefcase.AlarmOff &&
		s.PinEdit == briefcase.PinEditInactive
}

// armed holds when security is enabled outside PIN editing.
func armed(s *briefcase.State) bool {
	return s.Security == briefcase.SecurityEnabled && s.PinEdit == briefcase.PinEditInactive
}

// editing holds while the saved PIN is edited on a disarmed unit.
func editing(s *briefcase.State) bool {
	return s.PinEdit == briefcase.PinEditActive && s.Security == briefcase.SecurityDisabled
}

// pinEvent reports a PIN on the code line.
func pinEvent(p briefcase.PIN) briefcase.Event {
	return briefcase.NewPayloadEvent(briefcase.EventDisplayedPin, p.Bytes())
}

// positionEvent reports the cursor on the position line.
func positionEvent(c briefcase.Cursor) briefcase.Event {
	return briefcase.NewPayloadEvent(briefcase.EventPosition, c.Marker())
}

// rules is the transition table in priority order.
//
//nolint:gochecknoglobals,funlen // The table is the state machine.
var rules = []rule{
	{
		name:    RuleLock,
		trigger: TriggerUp,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseUnlocked) && idle(s)
		},
		apply: func(st *step) {
			st.state.Briefcase = briefcase.CaseLocked
			st.emit(briefcase.NewEvent(briefcase.EventBriefcaseLocked))
		},
	},
	{
		name:    RuleUnlock,
		trigger: TriggerDown,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked) && idle(s)
		},
		apply: func(st *step) {
			st.state.Briefcase = briefcase.CaseUnlocked
			st.emit(briefcase.NewEvent(briefcase.EventBriefcaseUnlocked))
		},
	},
	{
		name:    RuleArm,
		trigger: TriggerRight,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked) && idle(s)
		},
		apply: func(st *step) {
			st.state.Security = briefcase.SecurityEnabled
			st.state.DisplayedPin = briefcase.ZeroPIN()
			st.state.Cursor = 0
			st.emit(
				briefcase.NewEvent(briefcase.EventSecurityEnabled),
				pinEvent(st.state.DisplayedPin),
				positionEvent(st.state.Cursor),
			)
		},
	},
	{
		name:    RuleDisarm,
		trigger: TriggerCenter,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked, briefcase.CaseMoving) && armed(s)
		},
		apply: func(st *step) {
			// A wrong PIN consumes the press without any effect.
			if st.state.DisplayedPin != st.state.SavedPin {
				return
			}

			st.state.Briefcase = briefcase.CaseLocked
			st.state.Security = briefcase.SecurityDisabled
			st.state.Alarm = briefcase.AlarmOff
			st.emit(
				briefcase.NewEvent(briefcase.EventBriefcaseLocked),
				briefcase.NewEvent(briefcase.EventSecurityDisabled),
				briefcase.NewEvent(briefcase.EventAlarmOff),
				briefcase.NewEvent(briefcase.EventDisplayClear),
			)
		},
	},
	{
		name:    RuleDigitUp,
		trigger: TriggerUp,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked, briefcase.CaseMoving) && armed(s)
		},
		apply: func(st *step) {
			st.state.DisplayedPin.Increment(int(st.state.Cursor))
			st.emit(pinEvent(st.state.DisplayedPin))
		},
	},
	{
		name:    RuleDigitDown,
		trigger: TriggerDown,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked, briefcase.CaseMoving) && armed(s)
		},
		apply: func(st *step) {
			st.state.DisplayedPin.Decrement(int(st.state.Cursor))
			st.emit(pinEvent(st.state.DisplayedPin))
		},
	},
	{
		// The right button walks the cursor towards the first digit.
		name:    RuleCursorLeft,
		trigger: TriggerRight,
		guard:   armed,
		apply: func(st *step) {
			st.state.Cursor = st.state.Cursor.Left()
			st.emit(positionEvent(st.state.Cursor))
		},
	},
	{
		name:    RuleCursorRight,
		trigger: TriggerLeft,
		guard:   armed,
		apply: func(st *step) {
			st.state.Cursor = st.state.Cursor.Right()
			st.emit(positionEvent(st.state.Cursor))
		},
	},
	{
		name:    RuleEditEnter,
		trigger: TriggerLeft,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked, briefcase.CaseUnlocked) && idle(s)
		},
		apply: func(st *step) {
			st.state.PinEdit = briefcase.PinEditActive
			st.state.DisplayedPin = st.state.SavedPin
			st.state.Cursor = 0
			st.emit(
				briefcase.NewEvent(briefcase.EventPinEditOn),
				pinEvent(st.state.SavedPin),
				positionEvent(st.state.Cursor),
			)
		},
	},
	{
		// Only the security axis is checked here; a center press on an idle
		// disarmed unit also clears the edit lines.
		name:    RuleEditExit,
		trigger: TriggerCenter,
		guard: func(s *briefcase.State) bool {
			return s.Security == briefcase.SecurityDisabled
		},
		apply: func(st *step) {
			st.state.PinEdit = briefcase.PinEditInactive
			st.emit(
				briefcase.NewEvent(briefcase.EventPinEditOff),
				briefcase.NewEvent(briefcase.EventDisplayClear),
			)
		},
	},
	{
		name:    RuleEditDigitUp,
		trigger: TriggerUp,
		guard:   editing,
		apply: func(st *step) {
			st.state.SavedPin.Increment(int(st.state.Cursor))
			st.emit(pinEvent(st.state.SavedPin))
		},
	},
	{
		name:    RuleEditDigitDown,
		trigger: TriggerDown,
		guard:   editing,
		apply: func(st *step) {
			st.state.SavedPin.Decrement(int(st.state.Cursor))
			st.emit(pinEvent(st.state.SavedPin))
		},
	},
	{
		name:    RuleEditCursorLeft,
		trigger: TriggerRight,
		guard:   editing,
		apply: func(st *step) {
			st.state.Cursor = st.state.Cursor.Left()
			st.emit(positionEvent(st.state.Cursor))
		},
	},
	{
		name:    RuleEditCursorRight,
		trigger: TriggerLeft,
		guard:   editing,
		apply: func(st *step) {
			st.state.Cursor = st.state.Cursor.Right()
			st.emit(positionEvent(st.state.Cursor))
		},
	},
	{
		name:    RuleSetInterval,
		trigger: TriggerDial,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked, briefcase.CaseUnlocked) && idle(s)
		},
		apply: func(st *step) {
			v := st.in.dial
			if v < briefcase.MinAlarmInterval || v > briefcase.MaxAlarmInterval {
				return
			}

			st.state.AlarmInterval = uint8(v)
			st.emit(briefcase.NewValueEvent(briefcase.EventTimeInterval, st.state.AlarmInterval))
		},
	},
	{
		name:    RuleCountdown,
		trigger: TriggerDial,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseMoving) &&
				s.Alarm == briefcase.AlarmPending &&
				armed(s)
		},
		apply: func(st *step) {
			if st.state.AlarmInterval > 0 {
				st.state.AlarmInterval--
			}

			st.emit(briefcase.NewValueEvent(briefcase.EventCountdownValue, st.state.AlarmInterval))

			if st.state.AlarmInterval == 0 {
				st.state.Alarm = briefcase.AlarmOn
				st.emit(briefcase.NewEvent(briefcase.EventAlarmOn))
			}
		},
	},
	{
		name:    RuleMotion,
		trigger: TriggerMotion,
		guard: func(s *briefcase.State) bool {
			return caseIs(s, briefcase.CaseLocked) && s.Alarm == briefcase.AlarmOff && armed(s)
		},
		apply: func(st *step) {
			if !st.in.axes.Exceeds(st.motionThreshold) {
				return
			}

			st.state.Alarm = briefcase.AlarmPending
			st.state.Briefcase = briefcase.CaseMoving
			st.emit(
				briefcase.NewEvent(briefcase.EventAlarmPending),
				briefcase.NewEvent(briefcase.EventBriefcaseMoving),
			)
		},
	},
}

// match returns the first rule for trigger whose guard holds on s.
func match(trigger Trigger, s *briefcase.State) (*rule, bool) {
	for i := range rules {
		r := &rules[i]
		if r.trigger == trigger && r.guard(s) {
			return r, true
		}
	}

	return nil, false
}
