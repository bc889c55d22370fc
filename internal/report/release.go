package report

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// toolsetReleases maps MSVC toolset versions to the Visual Studio release
// that ships them. All of them share major version 14.
var toolsetReleases = []struct {
	constraints version.Constraints
	name        string
}{
	{mustConstraint(">= 14.50, < 15.0"), "Visual Studio 2026"},
	{mustConstraint(">= 14.30, < 14.50"), "Visual Studio 2022"},
	{mustConstraint(">= 14.20, < 14.30"), "Visual Studio 2019"},
	{mustConstraint(">= 14.10, < 14.20"), "Visual Studio 2017"},
	{mustConstraint(">= 14.0, < 14.10"), "Visual Studio 2015"},
}

func mustConstraint(c string) version.Constraints {
	return version.MustConstraints(version.NewConstraint(c))
}

// Release returns the Visual Studio release name for a toolset version such
// as 14.38.33130, or "" if the version is not recognized.
func Release(toolsVersion string) string {
	v, err := version.NewVersion(toolsVersion)
	if err != nil {
		return ""
	}
	for _, r := range toolsetReleases {
		if r.constraints.Check(v) {
			return r.name
		}
	}
	return ""
}

// SDKBuild returns the build number of an SDK version (22621 for
// 10.0.22621.0), or "" if it cannot be parsed.
func SDKBuild(sdkVersion string) string {
	v, err := version.NewVersion(sdkVersion)
	if err != nil {
		return ""
	}
	segments := v.Segments()
	if len(segments) < 3 {
		return ""
	}
	return fmt.Sprint(segments[2])
}
