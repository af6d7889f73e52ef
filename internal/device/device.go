package device

import (
	"math"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// LevelReader reads the raw level of a joystick button: true while held down.
type LevelReader interface {
	Read(b briefcase.Button) bool
}

// DialSource reads the dial as a value in [0, 1].
type DialSource interface {
	ReadNormalized() float64
}

// MotionSource reads the accelerometer.
type MotionSource interface {
	ReadAxes() briefcase.Axes
	// Init puts the sensor into measurement mode.
	Init() bool
	// Calibrate zeroes the sensor at rest.
	Calibrate() bool
}

// StatusDisplay renders one event on the status screen. Unknown kinds are ignored.
type StatusDisplay interface {
	Render(e briefcase.Event)
}

// AlarmIndicator flips the alarm lights.
type AlarmIndicator interface {
	Toggle()
}

// DialScale converts a normalized dial reading into seconds.
const DialScale = 120

// DialSeconds converts a normalized dial reading into whole seconds, truncating.
// Readings outside [0, 1] are clamped first.
func DialSeconds(normalized float64) int {
	switch {
	case math.IsNaN(normalized), normalized < 0:
		return 0
	case normalized > 1:
		return DialScale
	default:
		return int(DialScale * normalized)
	}
}
