// Package security implements the security controller of the briefcase unit.
//
// The Controller owns the single SecurityState and turns button, dial and
// motion inputs into state transitions. Transitions are declared in one ordered
// table: for an input, rules for its trigger are evaluated in declaration order
// and the first whose guard holds is applied. Inputs for which no guard holds
// are dropped silently. Every event a transition produces is pushed to the
// event sink before the next input is considered.
package security
