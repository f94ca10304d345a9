package serialization

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Encode writes v wrapped in an envelope built from h.
//
// Version, ID, Created and Checksum are filled in; the other header fields
// are written as given. The completed header is returned.
func Encode(w io.Writer, h Header, v any) (Header, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Header{}, errors.Wrap(err, "serialization: marshal payload")
	}
	sum, err := PayloadChecksum(payload)
	if err != nil {
		return Header{}, err
	}

	h.Version = CurrentVersion
	h.ID = uuid.NewString()
	h.Created = time.Now().UTC().Truncate(time.Second)
	h.Checksum = sum
	if err := ValidateHeader(h); err != nil {
		return Header{}, err
	}

	enc := json.NewEncoder(w)
	if err := enc.Encode(envelope{Header: h, Payload: payload}); err != nil {
		return Header{}, errors.Wrap(err, "serialization: write envelope")
	}
	return h, nil
}

// Save writes v to path through a temporary file in the same directory, so a
// crash never leaves a truncated snapshot behind.
func Save(path string, h Header, v any) (Header, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return Header{}, errors.Wrap(err, "serialization: create temporary file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success.

	h, err = Encode(tmp, h, v)
	if err != nil {
		tmp.Close()
		return Header{}, err
	}
	if err := tmp.Close(); err != nil {
		return Header{}, errors.Wrap(err, "serialization: close temporary file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Header{}, errors.Wrapf(err, "serialization: rename to %s", path)
	}
	return h, nil
}
