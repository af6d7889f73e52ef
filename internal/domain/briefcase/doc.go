// Package briefcase contains core domain types for the briefcase access-control unit.
//
// It defines the Event notifications the security controller emits, the
// SecurityState aggregate with its four mutually exclusive axes, the PIN and
// cursor helpers, and the typed inputs produced by the hardware pollers.
package briefcase
