package serialization

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Decode reads a snapshot of the given format from r into v.
//
// Enveloped snapshots have their header validated and payload checksum
// verified. A bare legacy snapshot is accepted when its inferred format
// matches and is reported with Version 0.
func Decode(r io.Reader, format string, v any) (Header, error) {
	h, payload, err := decode(r)
	if err != nil {
		return Header{}, err
	}
	if h.Format != format {
		return Header{}, errors.Wrapf(ErrFormatMismatch, "want %q, got %q", format, h.Format)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return Header{}, errors.Wrap(err, "serialization: decode payload")
	}
	return h, nil
}

// Load opens path and decodes it with Decode.
func Load(path, format string, v any) (Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return Header{}, errors.Wrap(err, "serialization: open snapshot")
	}
	defer f.Close()

	h, err := Decode(f, format, v)
	if err != nil {
		return Header{}, errors.Wrapf(err, "load %s", path)
	}
	return h, nil
}

// Peek reads and verifies the snapshot at path and returns its header
// without decoding the payload into a network.
func Peek(path string) (Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return Header{}, errors.Wrap(err, "serialization: open snapshot")
	}
	defer f.Close()

	h, _, err := decode(f)
	if err != nil {
		return Header{}, errors.Wrapf(err, "peek %s", path)
	}
	return h, nil
}

func decode(r io.Reader) (Header, json.RawMessage, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSnapshotSize+1))
	if err != nil {
		return Header{}, nil, errors.Wrap(err, "serialization: read snapshot")
	}
	if len(data) > MaxSnapshotSize {
		return Header{}, nil, ErrTooLarge
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Header{}, nil, errors.Wrap(ErrUnrecognized, err.Error())
	}

	if _, ok := fields["payload"]; !ok {
		format := legacyFormat(fields)
		if format == "" {
			return Header{}, nil, errors.Wrap(ErrUnrecognized, "no payload and no network fields")
		}
		return Header{Format: format, Version: LegacyVersion}, json.RawMessage(data), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Header{}, nil, errors.Wrap(err, "serialization: decode envelope")
	}
	if env.Version == LegacyVersion {
		return Header{}, nil, errors.Wrap(ErrUnsupportedVersion, "enveloped snapshot with version 0")
	}
	if err := ValidateHeader(env.Header); err != nil {
		return Header{}, nil, err
	}
	sum, err := PayloadChecksum(env.Payload)
	if err != nil {
		return Header{}, nil, err
	}
	if err := ValidateChecksum(sum, env.Checksum); err != nil {
		return Header{}, nil, err
	}
	return env.Header, env.Payload, nil
}
