package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "1.0.0"

	// MinCompatibleVersion is the oldest plugin protocol the host accepts.
	MinCompatibleVersion = "1.0.0"
)

// Version is a parsed MAJOR.MINOR.PATCH protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(s), "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %q (expected MAJOR.MINOR.PATCH)", s)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %q", part, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// CurrentVersion returns ProtocolVersion parsed.
func CurrentVersion() Version {
	v, err := ParseVersion(ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}

// CheckCompatible returns an error unless a plugin speaking pluginVersion
// can serve this host: the major version must match and the version must
// not predate MinCompatibleVersion. Newer minor and patch versions are
// accepted.
func CheckCompatible(pluginVersion string) error {
	pv, err := ParseVersion(pluginVersion)
	if err != nil {
		return fmt.Errorf("plugin protocol: %w", err)
	}

	current := CurrentVersion()
	if pv.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, host requires %d.x.x", pv, current.Major)
	}

	minVersion, err := ParseVersion(MinCompatibleVersion)
	if err != nil {
		return fmt.Errorf("invalid MinCompatibleVersion constant: %w", err)
	}
	if pv.Less(minVersion) {
		return fmt.Errorf("plugin protocol %s is too old, minimum required is %s", pv, minVersion)
	}
	return nil
}
