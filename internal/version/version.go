// Package version holds build metadata for the accoutrement binary.
// Values are injected at build time with ldflags, for example:
//
//	go build -ldflags "-X github.com/supermueller/accoutrement-color/internal/version.Version=1.2.0 \
//	  -X github.com/supermueller/accoutrement-color/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/supermueller/accoutrement-color/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/accoutrement
package version

import (
	"fmt"
	"runtime"
)

const unknown = "unknown"

var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Info is the build metadata, as printed by "accoutrement version --json".
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	if i.Commit != unknown && i.Date != unknown {
		return fmt.Sprintf("accoutrement %s (commit %s, built %s, %s, %s)",
			i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("accoutrement %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
