// Package version provides the application metadata: name, author and a
// semver-validated version.
package version

import (
	"fmt"
	"regexp"
)

// semverPattern matches MAJOR.MINOR.PATCH with optional prerelease and build.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z]+(\.[0-9A-Za-z]+)*)?(\+[0-9A-Za-z]+(\.[0-9A-Za-z]+)*)?$`)

// Validate reports an error unless version is a semantic version.
func Validate(version string) error {
	if !semverPattern.MatchString(version) {
		return fmt.Errorf("invalid semver format: %q", version)
	}
	return nil
}
