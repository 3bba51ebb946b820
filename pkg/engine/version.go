package engine

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Precision is how much of a MongoDB version a request pins.
type Precision int

const (
	PrecisionLatest Precision = iota
	PrecisionMajor
	PrecisionMajorMinor
	PrecisionMajorMinorPatch
)

// Version is a requested MongoDB version. The zero value is "latest", which
// leaves the choice to the engine.
type Version struct {
	precision Precision
	v         semver.Version
}

// Latest returns the unresolved "latest" version.
func Latest() Version {
	return Version{}
}

// MajorVersion pins only the major version (e.g., "8").
func MajorVersion(major uint64) Version {
	return Version{precision: PrecisionMajor, v: semver.Version{Major: major}}
}

// MajorMinorVersion pins major and minor (e.g., "8.0").
func MajorMinorVersion(major, minor uint64) Version {
	return Version{precision: PrecisionMajorMinor, v: semver.Version{Major: major, Minor: minor}}
}

// ExactVersion pins a full semantic version, including any pre-release or
// build metadata.
func ExactVersion(v semver.Version) Version {
	return Version{precision: PrecisionMajorMinorPatch, v: v}
}

// Precision returns how much of the version is pinned.
func (v Version) Precision() Precision {
	return v.precision
}

// IsLatest reports whether v leaves the version to the engine.
func (v Version) IsLatest() bool {
	return v.precision == PrecisionLatest
}

// Major returns the major component. Meaningless for latest.
func (v Version) Major() uint64 { return v.v.Major }

// Minor returns the minor component. Meaningless below major.minor precision.
func (v Version) Minor() uint64 { return v.v.Minor }

// Semver returns the full semantic version when v is fully resolved.
func (v Version) Semver() (semver.Version, bool) {
	if v.precision != PrecisionMajorMinorPatch {
		return semver.Version{}, false
	}
	return v.v, true
}

// Compare orders two fully resolved versions. Partial versions and latest do
// not order.
func (v Version) Compare(o Version) (int, error) {
	a, ok := v.Semver()
	if !ok {
		return 0, NewEngineError("Compare", v.String(), "cannot order partial version", ErrVersionNotComparable)
	}
	b, ok := o.Semver()
	if !ok {
		return 0, NewEngineError("Compare", o.String(), "cannot order partial version", ErrVersionNotComparable)
	}
	return a.Compare(b), nil
}

// String renders the version at its own precision.
func (v Version) String() string {
	switch v.precision {
	case PrecisionMajor:
		return fmt.Sprintf("%d", v.v.Major)
	case PrecisionMajorMinor:
		return fmt.Sprintf("%d.%d", v.v.Major, v.v.Minor)
	case PrecisionMajorMinorPatch:
		return v.v.String()
	default:
		return "latest"
	}
}
