package briefcase

import "fmt"

// Status is a point-in-time report of the unit for front panels.
type Status struct {
	// UnitID identifies the unit.
	UnitID string
	// Briefcase is the physical lock state.
	Briefcase CaseState
	// Security tells whether the unit is armed.
	Security SecurityMode
	// Alarm is the alarm lifecycle.
	Alarm AlarmState
	// PinEdit tells whether the saved PIN is being edited.
	PinEdit PinEditMode
	// Interval is the remaining countdown in seconds.
	Interval uint8
	// LEDs is the alarm indicator state.
	LEDs []bool
	// Lines is the text on the status display.
	Lines []string
}

// Clone returns a deep copy of the status.
func (s *Status) Clone() *Status {
	if s == nil {
		return nil
	}

	c := *s
	c.LEDs = append([]bool(nil), s.LEDs...)
	c.Lines = append([]string(nil), s.Lines...)

	return &c
}

// stateName is implemented by the small state enums.
type stateName interface {
	~uint8
	String() string
}

// parseState finds the value of T in [0, last] whose name is s.
func parseState[T stateName](s string, last T) (T, error) {
	for v := T(0); v <= last; v++ {
		if v.String() == s {
			return v, nil
		}
	}

	var zero T

	return zero, fmt.Errorf("unknown state %q", s)
}

// ParseCaseState converts a name returned by CaseState.String.
func ParseCaseState(s string) (CaseState, error) {
	return parseState(s, CaseMoving)
}

// ParseSecurityMode converts a name returned by SecurityMode.String.
func ParseSecurityMode(s string) (SecurityMode, error) {
	return parseState(s, SecurityEnabled)
}

// ParseAlarmState converts a name returned by AlarmState.String.
func ParseAlarmState(s string) (AlarmState, error) {
	return parseState(s, AlarmOn)
}

// ParsePinEditMode converts a name returned by PinEditMode.String.
func ParsePinEditMode(s string) (PinEditMode, error) {
	return parseState(s, PinEditActive)
}
