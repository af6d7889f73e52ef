// Package integration holds end-to-end tests that run the unit behind a real
// gRPC listener and drive it with the panel client.
package integration
