// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder and a shared atomic level,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level parsing and a per-logger level floor,
//   - leveled helpers that take the context (DebugKV, InfoKV, Warnf, ...).
//
// Every task of the unit receives a context and extracts the logger from it,
// so each log line carries the component name and the unit identifier.
package logger
