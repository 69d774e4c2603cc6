// Package misc keeps build time information about the program.
package misc

import "strings"

// Values are injected at link time with -ldflags "-X pd6/misc.version=...".
var (
	appName = "pd6"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns name of the program as it should appear in logs and file names.
func GetAppName() string {
	return appName
}

// GetVersion returns program version without leading "v".
func GetVersion() string {
	return strings.TrimPrefix(version, "v")
}

// GetGitHash returns git commit program was built from.
func GetGitHash() string {
	return gitHash
}
