package schema

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckRequires verifies that cliVersion satisfies the catalog's `requires`
// constraint. Development builds ("dev" or any unparsable version) and
// catalogs without a constraint always pass.
func (s *AnswerSchema) CheckRequires(cliVersion string) error {
	if s.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(s.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", s.Requires, err)
	}
	v, err := parseSemver(cliVersion)
	if err != nil {
		return nil
	}
	if !c.Check(v) {
		return fmt.Errorf("catalog %s requires CLI version %s, running %s", s.SchemaVersion, s.Requires, cliVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
