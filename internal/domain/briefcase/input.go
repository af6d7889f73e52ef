package briefcase

import (
	"fmt"
	"strings"
)

// Button identifies one of the five joystick directions.
type Button uint8

// Joystick buttons, numbered like the board wiring.
const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonUp
	ButtonDown
	ButtonCenter
)

// ButtonCount is the number of joystick buttons.
const ButtonCount = 5

// PollOrder is the order in which the button task samples the joystick.
//
//nolint:gochecknoglobals // Fixed table.
var PollOrder = [ButtonCount]Button{ButtonUp, ButtonDown, ButtonRight, ButtonCenter, ButtonLeft}

// buttonNames holds lowercase button names.
//
//nolint:gochecknoglobals // Lookup table.
var buttonNames = [ButtonCount]string{
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonUp:     "up",
	ButtonDown:   "down",
	ButtonCenter: "center",
}

// String returns the lowercase button name.
func (b Button) String() string {
	if b.Valid() {
		return buttonNames[b]
	}

	return fmt.Sprintf("button(%d)", uint8(b))
}

// Valid reports whether b names a real button.
func (b Button) Valid() bool {
	return b < ButtonCount
}

// ParseButton converts a case-insensitive name into a Button.
func ParseButton(s string) (Button, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range buttonNames {
		if name == s {
			return Button(i), true
		}
	}

	return 0, false
}

// Axes is one triaxial motion sample in sensor counts.
type Axes struct {
	X int
	Y int
	Z int
}

// Exceeds reports whether any axis magnitude reaches threshold.
func (a Axes) Exceeds(threshold int) bool {
	for _, v := range [...]int{a.X, a.Y, a.Z} {
		if v >= threshold || v <= -threshold {
			return true
		}
	}

	return false
}
