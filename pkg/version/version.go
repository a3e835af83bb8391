// Package version holds build metadata for the trendscope binary.
package version

import (
	"fmt"
	"runtime/debug"
)

const (
	devVersion  = "dev"
	unknownText = "unknown"
)

// Set with -ldflags "-X github.com/Sumatoshi-tech/trendscope/pkg/version.Version=...".
var (
	Version = devVersion
	Commit  = unknownText
	Date    = unknownText
)

// InitBinaryVersion fills the fields left unset at link time from the
// module build info embedded by the go tool.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == devVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == unknownText {
				Commit = s.Value
			}
		case "vcs.time":
			if Date == unknownText {
				Date = s.Value
			}
		}
	}
}

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("trendscope %s (commit: %s, built: %s)", Version, Commit, Date)
}
