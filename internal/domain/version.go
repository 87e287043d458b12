package domain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version wraps semver.Version. Release versions are carried without a
// leading v, matching the version embedded in the staged npm package.
type Version struct {
	*semver.Version
}

// NewVersion parses a strict semantic version without prefix.
func NewVersion(s string) (*Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid release version %q: %w", s, err)
	}
	return &Version{v}, nil
}

// String returns the version string without a v prefix.
func (v *Version) String() string {
	return v.Version.String()
}
