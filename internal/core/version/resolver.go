// Package version resolves free-form MongoDB version requests into engine
// versions.
//
// Resolution is strict. "latest" and an absent version both leave the choice
// to the engine; anything else must be a semantic version or a major /
// major.minor prefix of one, and is resolved at the most specific precision
// the input spells out. Malformed input is an error, never a default.
package version

import (
	"strconv"
	"strings"

	"github.com/artpar/atlaslocal/pkg/engine"
	"github.com/artpar/atlaslocal/pkg/models"
	"github.com/blang/semver/v4"
)

// LatestKeyword requests the engine's default version.
const LatestKeyword = "latest"

const field = "mongodbVersion"

// Resolve parses an optional version string.
//
// Example:
//
//	v, err := version.Resolve(ptr("8.0"))
//	// v.Precision() == engine.PrecisionMajorMinor, v.String() == "8.0"
func Resolve(s *string) (engine.Version, error) {
	if s == nil || *s == LatestKeyword {
		return engine.Latest(), nil
	}
	return Parse(*s)
}

// Parse resolves a version string that is present.
func Parse(s string) (engine.Version, error) {
	if s == LatestKeyword {
		return engine.Latest(), nil
	}

	switch strings.Count(s, ".") {
	case 0:
		major, err := component(s)
		if err != nil {
			return engine.Version{}, malformed(s, err.Error())
		}
		return engine.MajorVersion(major), nil
	case 1:
		majorStr, minorStr, _ := strings.Cut(s, ".")
		major, err := component(majorStr)
		if err != nil {
			return engine.Version{}, malformed(s, err.Error())
		}
		minor, err := component(minorStr)
		if err != nil {
			return engine.Version{}, malformed(s, err.Error())
		}
		return engine.MajorMinorVersion(major, minor), nil
	}

	v, err := semver.Parse(s)
	if err != nil {
		return engine.Version{}, malformed(s, err.Error())
	}
	return engine.ExactVersion(v), nil
}

// Display renders a version the way results report it.
func Display(v engine.Version) string {
	return v.String()
}

// component parses one numeric version component without sign or leading
// zeroes.
func component(s string) (uint64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseUint(s, 10, 64)
}

func malformed(s, detail string) error {
	return models.NewFieldError(field, s, "not a semantic version: "+detail, models.ErrMalformedVersion)
}
