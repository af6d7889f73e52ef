// Package version exposes build metadata for the briefcase binaries.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// Short, Full and UserAgent render the version for CLI output, logs and
// gRPC headers.
package version
