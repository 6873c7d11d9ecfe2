// Package buildinfo exposes the version stamped into the binary at release
// time. The variables are overridden via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/causeway/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/causeway/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/causeway/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version, "dev" for unstamped builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the multi-line build description.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s",
		Version, Commit, Date, runtime.Version())
}

// Template returns the cobra --version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\ngo: %s\n",
		Version, Commit, Date, runtime.Version())
}
