// Package device declares the hardware collaborators of the unit and the
// edge-triggered button reader the button task relies on.
//
// Implementations for a host without hardware live in the sim subpackage.
package device
