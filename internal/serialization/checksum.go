package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ComputeChecksum computes SHA-256 checksum of data.
func ComputeChecksum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeChecksumReader computes SHA-256 checksum from an io.Reader.
func ComputeChecksumReader(r io.Reader) ([32]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return [32]byte{}, err
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// PayloadChecksum returns the hex SHA-256 of the compact form of a JSON
// payload, so that re-indenting a snapshot file does not invalidate it.
func PayloadChecksum(payload []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return "", errors.Wrap(err, "serialization: compact payload")
	}
	sum := ComputeChecksum(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// ValidateChecksum compares a computed hex checksum against the stored one.
// Returns ErrChecksumMismatch if they don't match.
func ValidateChecksum(computed, stored string) error {
	if computed != stored {
		return errors.Wrapf(ErrChecksumMismatch, "stored %.12s, computed %.12s", stored, computed)
	}
	return nil
}
