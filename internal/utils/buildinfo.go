package utils

import (
	"runtime/debug"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
	shortRevisionLen   = 12
)

// GetApplicationVersion reports the module version recorded in the build
// info. Development builds fall back to the VCS revision, suffixed with
// "-dirty" when the working tree was modified.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}

	if buildInfo.Main.Version != "" && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}

	revision := ""
	modified := false
	for _, buildSetting := range buildInfo.Settings {
		switch buildSetting.Key {
		case "vcs.revision":
			revision = buildSetting.Value
		case "vcs.modified":
			modified = buildSetting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLen {
		revision = revision[:shortRevisionLen]
	}
	if modified {
		return revision + "-dirty"
	}
	return revision
}
