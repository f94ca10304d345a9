package serialization

import (
	"fmt"

	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("serialization: checksum mismatch: file may be corrupted")
	ErrUnsupportedVersion = errors.New("serialization: unsupported format version")
	ErrFormatMismatch     = errors.New("serialization: snapshot format mismatch")
	ErrUnrecognized       = errors.New("serialization: unrecognized snapshot")
	ErrTooLarge           = errors.New("serialization: snapshot exceeds maximum size")
)

// ValidationError provides detailed information about envelope validation
// failures.
type ValidationError struct {
	Field   string // Envelope field (e.g., "id", "format")
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("serialization: invalid %s: %s", e.Field, e.Details)
}
