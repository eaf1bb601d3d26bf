// Package contracts carries the version identity of the converter. The
// canonical version lives here so the binaries, the startup log and the
// HTTP version endpoint all report the same value.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the converter
	Version = "1.2.0"

	// VersionMajor is the major version number
	VersionMajor = 1

	// VersionMinor is the minor version number
	VersionMinor = 2

	// VersionPatch is the patch version number
	VersionPatch = 0

	// DataFormatVersion is the version of the converted-file layout
	DataFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// BuildID is set during build using ldflags
	BuildID = "dev"
)

// VersionInfo contains detailed version information about this build.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	BuildID   string `json:"build_id"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionInfo returns the full version information of the running build.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildTime: BuildTime,
		BuildID:   BuildID,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders the version for display, e.g. "1.2.0 (build dev)".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (build %s)", v.Version, v.BuildID)
}
