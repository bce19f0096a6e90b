package main

import (
	"os"
	"runtime/debug"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}

	ver := "devel+" + revision
	if len(ver) > 20 {
		ver = ver[:20]
	}
	if dirty {
		ver += "+dirty"
	}
	return ver
}
