// Package version reports the build version of the awgseq tools.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/frostlab/awgseq/version.Version=$(git describe --dirty)"
var Version string

// String returns the explicit version if one was linked in, otherwise the
// VCS revision recorded in the build info.
func String() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	revision, modified := "unknown", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) >= 7 {
				revision = setting.Value[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if modified {
		return revision + "-dirty"
	}
	return revision
}
