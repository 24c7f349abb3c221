// Package version reports the version of the mathtone binaries.
package version

import (
	"fmt"
	"runtime/debug"
)

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/vsariola/mathtone/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision the binary was built from, with -dirty
// appended for builds of a modified tree. Empty when unknown.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return revision(info.Settings)
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func revision(settings []debug.BuildSetting) string {
	var rev string
	modified := false
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if rev == "" {
		return ""
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if modified {
		return rev + "-dirty"
	}
	return rev
}

// Describe returns a one line description of the build, e.g.
// "mathtone 1a2b3c4 (go1.24.0)".
func Describe() string {
	v := VersionOrHash
	if v == "" {
		v = "(devel)"
	}
	goVersion := "unknown go"
	if info, ok := debug.ReadBuildInfo(); ok {
		goVersion = info.GoVersion
	}
	return fmt.Sprintf("mathtone %s (%s)", v, goVersion)
}
