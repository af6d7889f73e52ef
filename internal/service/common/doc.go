// Package common holds helpers shared by several services.
//
// It provides a lightweight gRPC client for the unit's front panel with call
// timeouts and a utility to detect the current operator (hostname/username).
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
