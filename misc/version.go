// Package misc keeps program identity set at build time.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X restyle/misc.version=... -X restyle/misc.gitHash=...".
var (
	appName = "restyle"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to VCS
// information recorded by the toolchain.
func GetGitHash() string {
	if len(gitHash) > 0 {
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
