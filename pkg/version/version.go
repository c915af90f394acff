// Package version exposes build metadata injected through -ldflags.
package version

import "fmt"

// Set at build time:
//
//	-ldflags "-X github.com/rshade/carbonwise/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // ldflags targets
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}

// Info returns a one-line description of the build.
func Info() string {
	s := version
	if gitCommit != "" {
		s += fmt.Sprintf(" (%s)", gitCommit)
	}
	if buildDate != "" {
		s += " built " + buildDate
	}
	return s
}
