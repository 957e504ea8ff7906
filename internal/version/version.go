// Package version exposes build metadata injected through -ldflags.
package version

import "runtime"

// Name is the program name used in the user agent and banner.
const Name = "audiobridge"

// Set with -X github.com/smazurov/audiobridge/internal/version.<Var>=...
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info contains version and build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns version and build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns "audiobridge <version> (<commit>)", dropping the commit
// when it is unknown.
func String() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Name + " " + Version
	}
	commit := GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Name + " " + Version + " (" + commit + ")"
}
