// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/graphedit/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/graphedit/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/graphedit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/graphedit
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build time.
	Date = "unknown"
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the --version template for cobra.
func Template() string {
	return "{{.Name}} " + Version + "\n" + fmt.Sprintf("commit: %s\nbuilt: %s\n", Commit, Date)
}

// UserAgent identifies graphedit in server headers, e.g. "graphedit/v0.3.0".
func UserAgent() string {
	return "graphedit/" + Version
}
