package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// floorCore drops entries below floor on top of whatever the wrapped core enables.
type floorCore struct {
	zapcore.Core

	// floor is the lowest level this core lets through.
	floor zapcore.Level
}

// Enabled requires both the floor and the wrapped core to accept l.
func (c *floorCore) Enabled(l zapcore.Level) bool {
	return c.floor.Enabled(l) && c.Core.Enabled(l)
}

// Check registers the core on ce when the entry passes Enabled.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *floorCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}

	return ce.AddCore(ent, c)
}

// With keeps the floor on the derived core.
//
//nolint:ireturn,nolintlint // zapcore.Core is the contract zap expects.
func (c *floorCore) With(fields []zapcore.Field) zapcore.Core {
	return &floorCore{Core: c.Core.With(fields), floor: c.floor}
}

// WithLevel raises the minimum level of a logger to lvl.
// The shared level still applies, so a hot reload to a stricter level wins.
//
//nolint:ireturn,nolintlint // zap.Option is the contract zap expects.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &floorCore{Core: core, floor: lvl}
	})
}
