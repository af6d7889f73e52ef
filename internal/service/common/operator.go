//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"os"
	"os/user"

	"github.com/oshokin/briefcase-alarm/internal/api/grpc/panel"
)

// ErrOperatorUnknown is returned when neither the host nor the user can be identified.
var ErrOperatorUnknown = errors.New("operator cannot be identified")

// usernameEnv lists environment variables consulted when the account database
// has no entry for the current uid.
var usernameEnv = []string{"USER", "USERNAME", "LOGNAME"}

// DetectOperator gathers host and user information so the unit can log who
// is driving its front panel. Missing parts are left empty; an error is
// returned only when both are missing.
func DetectOperator() (*panel.Operator, error) {
	op := &panel.Operator{
		Username: detectUsername(),
	}

	if hostname, err := os.Hostname(); err == nil {
		op.Hostname = hostname
	}

	if op.Hostname == "" && op.Username == "" {
		return nil, ErrOperatorUnknown
	}

	return op, nil
}

// detectUsername prefers the account database and falls back to the environment.
func detectUsername() string {
	if current, err := user.Current(); err == nil && current.Username != "" {
		return current.Username
	}

	for _, name := range usernameEnv {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}

	return ""
}
