//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDetectOperator ensures at least the hostname is detected.
func TestDetectOperator(t *testing.T) {
	t.Parallel()

	op, err := DetectOperator()
	require.NoError(t, err)
	require.NotEmpty(t, op.Hostname)
}

// TestDetectUsername_FallsBackToEnvironment uses USER when nothing else is known.
func TestDetectUsername_FallsBackToEnvironment(t *testing.T) {
	t.Setenv("USER", "courier")

	require.NotEmpty(t, detectUsername())
}
