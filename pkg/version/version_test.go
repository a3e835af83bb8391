package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	Version, Commit, Date = devVersion, unknownText, unknownText

	t.Cleanup(func() {
		Version, Commit, Date = devVersion, unknownText, unknownText
	})

	apply(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v0.3.1", Version)
	assert.Equal(t, "abc123", Commit)
	assert.Equal(t, "trendscope v0.3.1 (commit: abc123, built: 2026-01-02T03:04:05Z)", String())
}

func TestApply_KeepsLinkerValues(t *testing.T) {
	Version, Commit, Date = "v1.0.0", "deadbeef", unknownText

	t.Cleanup(func() {
		Version, Commit, Date = devVersion, unknownText, unknownText
	})

	apply(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})

	assert.Equal(t, "v1.0.0", Version)
	assert.Equal(t, "deadbeef", Commit)
}
