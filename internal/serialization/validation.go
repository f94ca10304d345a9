package serialization

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxSnapshotSize limits how many bytes Decode reads.
const MaxSnapshotSize = 512 * 1024 * 1024

// ValidateHeader checks the envelope fields of a decoded snapshot.
func ValidateHeader(h Header) error {
	if h.Version < LegacyVersion || h.Version > CurrentVersion {
		return errors.Wrapf(ErrUnsupportedVersion, "got %d, max %d", h.Version, CurrentVersion)
	}
	if h.Format != FormatFFNN && h.Format != FormatCNN {
		return &ValidationError{Field: "format", Details: fmt.Sprintf("unknown format %q", h.Format)}
	}
	if h.Version == LegacyVersion {
		return nil
	}
	if _, err := uuid.Parse(h.ID); err != nil {
		return &ValidationError{Field: "id", Details: err.Error()}
	}
	if h.Checksum == "" {
		return &ValidationError{Field: "checksum", Details: "missing"}
	}
	return nil
}
