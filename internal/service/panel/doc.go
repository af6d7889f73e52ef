// Package panel implements the one-shot commands of briefcase-panel.
//
// Each command loads the settings, connects to the unit's front panel and
// performs a single operation: press a button, turn the dial, set the
// accelerometer or print the status.
package panel
