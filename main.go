package main

import (
	"runtime/debug"

	"github.com/marcus/sortable/cmd"
)

// Version is set by the release build with -ldflags "-X main.Version=...".
var Version = "dev"

// resolveVersion prefers an injected version, then the module version that
// `go install pkg@vX` records, then the VCS revision of a local build.
func resolveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}

	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return v
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	out := "devel+" + rev
	if dirty {
		out += "+dirty"
	}
	return out
}

func main() {
	cmd.SetVersion(resolveVersion(Version))
	cmd.Execute()
}
