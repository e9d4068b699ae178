// Package misc holds build time program identity.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X stylesync/misc.version=... -X stylesync/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

const appName = "stylesync"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns the commit the binary was built from, falling back to
// VCS information recorded by the toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
