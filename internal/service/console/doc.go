// Package console implements the interactive terminal front panel.
//
// The console polls the unit status over gRPC and redraws the status display
// and the alarm lights. Keys drive the joystick, the dial and the
// accelerometer. Logs go to a file so they do not tear the screen.
package console
