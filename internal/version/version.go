package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Version is filled at build time via -ldflags. Leave empty for fallback.
var Version string

// String returns the effective version: the -ldflags value, else the module
// version recorded by `go install`, else a dev marker with the VCS revision.
func String() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "v0.0.0-dev+unknown"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	return fmt.Sprintf("v0.0.0-dev+%s", revision(info))
}

func revision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
