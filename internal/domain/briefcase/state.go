package briefcase

import (
	"errors"
	"fmt"
	"time"
)

// CaseState is the physical state of the briefcase.
type CaseState uint8

// Briefcase states.
const (
	CaseUnlocked CaseState = iota
	CaseLocked
	CaseMoving
)

// String returns the lowercase state name.
func (s CaseState) String() string {
	switch s {
	case CaseUnlocked:
		return "unlocked"
	case CaseLocked:
		return "locked"
	case CaseMoving:
		return "moving"
	default:
		return fmt.Sprintf("case_state(%d)", uint8(s))
	}
}

// SecurityMode tells whether the unit is armed.
type SecurityMode uint8

// Security modes.
const (
	SecurityDisabled SecurityMode = iota
	SecurityEnabled
)

// String returns the lowercase mode name.
func (m SecurityMode) String() string {
	switch m {
	case SecurityDisabled:
		return "disabled"
	case SecurityEnabled:
		return "enabled"
	default:
		return fmt.Sprintf("security_mode(%d)", uint8(m))
	}
}

// AlarmState is the alarm lifecycle.
type AlarmState uint8

// Alarm states.
const (
	AlarmOff AlarmState = iota
	AlarmPending
	AlarmOn
)

// String returns the lowercase state name.
func (s AlarmState) String() string {
	switch s {
	case AlarmOff:
		return "off"
	case AlarmPending:
		return "pending"
	case AlarmOn:
		return "on"
	default:
		return fmt.Sprintf("alarm_state(%d)", uint8(s))
	}
}

// PinEditMode tells whether the saved PIN is being edited.
type PinEditMode uint8

// PIN edit modes.
const (
	PinEditInactive PinEditMode = iota
	PinEditActive
)

// String returns the lowercase mode name.
func (m PinEditMode) String() string {
	switch m {
	case PinEditInactive:
		return "inactive"
	case PinEditActive:
		return "active"
	default:
		return fmt.Sprintf("pin_edit_mode(%d)", uint8(m))
	}
}

// PINLength is the number of digits in a PIN.
const PINLength = 4

// PIN is a sequence of four ASCII digits.
type PIN [PINLength]byte

// errInvalidPIN is returned by ParsePIN for malformed input.
var errInvalidPIN = errors.New("pin must be exactly 4 digits")

// ParsePIN converts a 4-digit string into a PIN.
func ParsePIN(s string) (PIN, error) {
	var p PIN

	if len(s) != PINLength {
		return p, errInvalidPIN
	}

	for i := range PINLength {
		if s[i] < '0' || s[i] > '9' {
			return p, errInvalidPIN
		}

		p[i] = s[i]
	}

	return p, nil
}

// ZeroPIN returns "0000".
func ZeroPIN() PIN {
	return PIN{'0', '0', '0', '0'}
}

// Increment bumps the digit at i, wrapping 9 to 0.
func (p *PIN) Increment(i int) {
	if p[i] < '9' {
		p[i]++
	} else {
		p[i] = '0'
	}
}

// Decrement lowers the digit at i, wrapping 0 to 9.
func (p *PIN) Decrement(i int) {
	if p[i] > '0' {
		p[i]--
	} else {
		p[i] = '9'
	}
}

// String returns the digits as text.
func (p PIN) String() string {
	return string(p[:])
}

// Bytes returns the PIN as an event payload.
func (p PIN) Bytes() [PayloadSize]byte {
	return [PayloadSize]byte(p)
}

// Valid reports whether every cell holds an ASCII digit.
func (p PIN) Valid() bool {
	for _, c := range p {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

// Position marker glyphs.
const (
	MarkerSelected   = '-'
	MarkerUnselected = ' '
)

// Cursor selects the PIN digit being edited. It always stays in [0, PINLength).
type Cursor uint8

// Left moves the cursor one cell towards index 0, wrapping to the last cell.
func (c Cursor) Left() Cursor {
	if c == 0 {
		return PINLength - 1
	}

	return c - 1
}

// Right moves the cursor one cell towards the last index, wrapping to 0.
func (c Cursor) Right() Cursor {
	return (c + 1) % PINLength
}

// Marker returns the four position cells with only the cursor cell selected.
func (c Cursor) Marker() [PayloadSize]byte {
	marker := [PayloadSize]byte{MarkerUnselected, MarkerUnselected, MarkerUnselected, MarkerUnselected}
	marker[c%PINLength] = MarkerSelected

	return marker
}

// Alarm interval bounds accepted from the dial, in seconds.
const (
	MinAlarmInterval = 10
	MaxAlarmInterval = 120
)

// Flash period bounds and default for the alarm indicator.
const (
	MinFlashPeriod     = 1 * time.Millisecond
	MaxFlashPeriod     = 1000 * time.Millisecond
	DefaultFlashPeriod = 500 * time.Millisecond
)

// DefaultAlarmInterval is the countdown length before the dial is touched.
const DefaultAlarmInterval = 10

// DefaultSavedPIN is the factory PIN.
const DefaultSavedPIN = "1000"

// State is the single security aggregate owned by the controller.
type State struct {
	// Briefcase is the physical lock state.
	Briefcase CaseState
	// Security tells whether the unit is armed.
	Security SecurityMode
	// Alarm is the alarm lifecycle.
	Alarm AlarmState
	// PinEdit tells whether the saved PIN is being edited.
	PinEdit PinEditMode
	// DisplayedPin is the PIN being entered to disarm.
	DisplayedPin PIN
	// SavedPin is the PIN that disarms the unit.
	SavedPin PIN
	// Cursor is the digit being edited, shared by both PIN contexts.
	Cursor Cursor
	// AlarmInterval is the countdown length in seconds; it is decremented in place.
	AlarmInterval uint8
	// FlashPeriod is the indicator blink period.
	FlashPeriod time.Duration
}

// NewState returns the power-on state: unlocked, disarmed, alarm off, not editing.
func NewState(savedPin PIN, alarmInterval uint8) State {
	return State{
		Briefcase:     CaseUnlocked,
		Security:      SecurityDisabled,
		Alarm:         AlarmOff,
		PinEdit:       PinEditInactive,
		DisplayedPin:  ZeroPIN(),
		SavedPin:      savedPin,
		Cursor:        0,
		AlarmInterval: alarmInterval,
		FlashPeriod:   DefaultFlashPeriod,
	}
}

// Marker returns the position marker derived from the cursor.
func (s *State) Marker() [PayloadSize]byte {
	return s.Cursor.Marker()
}

// errInvalidState reports a broken invariant.
var errInvalidState = errors.New("invalid security state")

// Validate checks that every axis holds exactly one known value and the cursor is in range.
func (s *State) Validate() error {
	switch {
	case s.Briefcase > CaseMoving:
		return fmt.Errorf("%w: briefcase %s", errInvalidState, s.Briefcase)
	case s.Security > SecurityEnabled:
		return fmt.Errorf("%w: security %s", errInvalidState, s.Security)
	case s.Alarm > AlarmOn:
		return fmt.Errorf("%w: alarm %s", errInvalidState, s.Alarm)
	case s.PinEdit > PinEditActive:
		return fmt.Errorf("%w: pin edit %s", errInvalidState, s.PinEdit)
	case s.Cursor >= PINLength:
		return fmt.Errorf("%w: cursor %d", errInvalidState, s.Cursor)
	case !s.DisplayedPin.Valid():
		return fmt.Errorf("%w: displayed pin %q", errInvalidState, s.DisplayedPin.String())
	case !s.SavedPin.Valid():
		return fmt.Errorf("%w: saved pin %q", errInvalidState, s.SavedPin.String())
	}

	return nil
}

// ClampFlashPeriod bounds d to the indicator's supported range.
func ClampFlashPeriod(d time.Duration) time.Duration {
	switch {
	case d < MinFlashPeriod:
		return MinFlashPeriod
	case d > MaxFlashPeriod:
		return MaxFlashPeriod
	default:
		return d
	}
}
