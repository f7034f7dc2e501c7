package schema

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the current blueprint schema version.
// Blueprint documents declare their version to indicate compatibility.
const SchemaVersion = "0.1.0"

// IsCompatible checks if a blueprint's declared version is compatible with
// SchemaVersion. Uses caret constraint (^) for semantic version compatibility.
//
// For version 0.x.y, caret constraint allows only patch version changes:
//   - Same major and minor version with different patch (0.1.0, 0.1.1, etc.)
//   - Does NOT allow minor version changes (0.2.0 is incompatible)
//   - Does NOT allow major version changes (1.0.0 is incompatible)
//
// Returns true if the versions are compatible according to semantic
// versioning rules. Returns false (with no error) if versions are
// incompatible. Returns an error if either version string is invalid.
func IsCompatible(documentVersion string) (bool, error) {
	constraint, err := semver.NewConstraint("^" + SchemaVersion)
	if err != nil {
		return false, fmt.Errorf("invalid schema version: %w", err)
	}

	v, err := semver.NewVersion(documentVersion)
	if err != nil {
		return false, fmt.Errorf("invalid blueprint version %q: %w", documentVersion, err)
	}

	return constraint.Check(v), nil
}
