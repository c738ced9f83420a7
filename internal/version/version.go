// Package version holds build information injected with -ldflags.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// EnsureVPrefix adds a "v" prefix if missing; golang.org/x/mod/semver requires it.
func EnsureVPrefix(s string) string {
	if strings.HasPrefix(s, "v") {
		return s
	}
	return "v" + s
}

// Compare compares two versions with or without the "v" prefix. ok is false
// when either is not a valid semantic version, e.g. "dev".
func Compare(a, b string) (cmp int, ok bool) {
	va, vb := EnsureVPrefix(a), EnsureVPrefix(b)
	if !semver.IsValid(va) || !semver.IsValid(vb) {
		return 0, false
	}
	return semver.Compare(va, vb), true
}
