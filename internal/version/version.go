package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Build metadata. Release builds override these via -ldflags "-X ...".
var (
	// Version is the semantic version of the unit firmware image.
	Version = "0.1.0"
	// Commit is the short git SHA, or "none" when neither ldflags nor VCS stamping provided one.
	Commit = "none"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// shortCommitLength is how many characters of a VCS revision are shown.
const shortCommitLength = 7

// stampOnce fills unset metadata from the toolchain's VCS stamp once.
//
//nolint:gochecknoglobals // Build metadata is process-wide.
var stampOnce sync.Once

// stamp copies vcs.revision and vcs.time into Commit and BuildTime when ldflags left them unset.
func stamp() {
	stampOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		for _, setting := range info.Settings {
			switch {
			case setting.Key == "vcs.revision" && Commit == "none":
				Commit = setting.Value[:min(len(setting.Value), shortCommitLength)]
			case setting.Key == "vcs.time" && BuildTime == "unknown":
				BuildTime = setting.Value
			}
		}
	})
}

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	stamp()

	return fmt.Sprintf("briefcase-alarm %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// UserAgent names a binary and its version for gRPC user-agent headers.
func UserAgent(binary string) string {
	return binary + "/" + Version
}
