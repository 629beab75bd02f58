package version

import (
	"fmt"
	"runtime/debug"
)

var (
	Version  string
	Revision string
)

func String() string {
	if Version != "" && Revision != "" {
		return fmt.Sprintf("downspeeds %s %s", Version, Revision)
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		return fmt.Sprintf("downspeeds %s", info.Main.Version)
	}

	return fmt.Sprintf("downspeeds %s", "(unknown)")
}
