// Package sim provides in-memory hardware for running the unit on a host:
// a joystick pad, a dial, an accelerometer and a bank of alarm LEDs.
//
// All types are safe for concurrent use; the front-panel service writes to
// them while the unit's tasks read from them.
package sim
