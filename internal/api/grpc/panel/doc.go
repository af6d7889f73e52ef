// Package panel implements the gRPC front panel of the briefcase unit.
//
// The service is described by hand with protobuf well-known types so that
// no generated code is needed. Press, SetDial and SetMotion drive the
// simulated hardware; GetStatus reports the security state together with the
// status display and the alarm indicator.
package panel
