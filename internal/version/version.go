// Package version holds build metadata injected via ldflags.
package version

import (
	"fmt"
	"runtime"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for the version command.
func String() string {
	v := Version
	if v == "dev" || v == "" {
		v = "development"
	}
	return fmt.Sprintf("ai900 %s (commit %s, built %s) %s %s/%s",
		v, Commit, Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
