// Package version parses the dotted version strings found in solution
// descriptor headers: the format version ("12.00") and tool versions
// ("17.0.31903.59").
//
// Example:
//
//	v, err := version.Parse("17.0.31903.59")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(v.Major, v.Minor) // 17 0
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// MinimumFormatVersion is the oldest descriptor format version the parser
// accepts. Older descriptors predate the section grammar handled here and
// need upgrading by their original tooling.
const MinimumFormatVersion = 7

// Version represents a dotted descriptor version with up to four parts.
type Version struct {
	// Major version number
	Major int

	// Minor version number
	Minor int

	// Build number, 0 when absent
	Build int

	// Revision number, 0 when absent
	Revision int

	// originalString preserves the string as parsed
	originalString string
}

// Parse parses a dotted version string of one to four numeric parts.
func Parse(s string) (*Version, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, fmt.Errorf("empty version string")
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) > 4 {
		return nil, fmt.Errorf("invalid version %q: more than four parts", s)
	}

	nums := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q: part %q is not a number", s, part)
		}
		nums[i] = n
	}

	return &Version{
		Major:          nums[0],
		Minor:          nums[1],
		Build:          nums[2],
		Revision:       nums[3],
		originalString: trimmed,
	}, nil
}

// String returns the version as originally written.
func (v *Version) String() string {
	if v.originalString != "" {
		return v.originalString
	}
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Compare returns -1, 0, or 1 comparing v to other part by part.
func (v *Version) Compare(other *Version) int {
	pairs := [4][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Build, other.Build},
		{v.Revision, other.Revision},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CheckFormat validates a descriptor format version string against the
// minimum supported version.
func CheckFormat(formatVersion string) error {
	v, err := Parse(formatVersion)
	if err != nil {
		return fmt.Errorf("unreadable format version: %w", err)
	}
	if v.Major < MinimumFormatVersion {
		return fmt.Errorf("format version %s is older than the minimum supported version %d", formatVersion, MinimumFormatVersion)
	}
	return nil
}
