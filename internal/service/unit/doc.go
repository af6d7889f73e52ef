// Package unit runs the briefcase unit.
//
// Producer tasks sample the joystick, the dial and the accelerometer and feed
// the security controller. The controller places events on the bounded queue
// and a single consumer renders them on the status display. An indicator task
// flashes the LEDs while the alarm is on. Run wires these tasks together with
// the gRPC front panel, the metrics endpoint and the config watcher.
package unit
