// Package version holds build-time version information.
package version

// Version information (overridden via ldflags during release builds).
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// GitCommit is the git commit hash of the build.
	GitCommit = "unknown"
	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)
