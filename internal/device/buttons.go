package device

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// DefaultSettleDelay is how long a released button is left to settle.
const DefaultSettleDelay = 100 * time.Millisecond

// EdgeButtons turns raw button levels into single press reports.
// A press is reported once, when a held button is seen released.
type EdgeButtons struct {
	// raw is the level source.
	raw LevelReader
	// settle is waited after a release before the press is reported.
	settle time.Duration

	// mu protects held.
	mu sync.Mutex
	// held remembers the last level seen per button.
	held [briefcase.ButtonCount]bool
}

// NewEdgeButtons wraps raw with press detection.
func NewEdgeButtons(raw LevelReader, settle time.Duration) *EdgeButtons {
	if settle < 0 {
		settle = 0
	}

	return &EdgeButtons{
		raw:    raw,
		settle: settle,
	}
}

// Read returns the raw level of b.
func (e *EdgeButtons) Read(b briefcase.Button) bool {
	return e.raw.Read(b)
}

// IsPressed reports whether b went from held to released since the previous call.
// A report waits out the settle delay first; a cancelled context suppresses it.
func (e *EdgeButtons) IsPressed(ctx context.Context, b briefcase.Button) bool {
	if !b.Valid() {
		return false
	}

	level := e.raw.Read(b)

	e.mu.Lock()
	wasHeld := e.held[b]
	e.held[b] = level
	e.mu.Unlock()

	if !wasHeld || level {
		return false
	}

	if e.settle == 0 {
		return true
	}

	timer := time.NewTimer(e.settle)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
