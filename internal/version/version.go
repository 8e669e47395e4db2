// Package version carries build metadata set through -ldflags, e.g.
//
//	go build -ldflags "-X github.com/dkoosis/tally/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the metadata for --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
