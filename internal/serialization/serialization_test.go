package serialization

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNetwork struct {
	Sizes   []int       `json:"sizes"`
	Weights [][]float64 `json:"weights"`
}

func sampleNetwork() testNetwork {
	return testNetwork{
		Sizes:   []int{2, 3},
		Weights: [][]float64{{0.1, -0.25}, {1e-9, 3.5}, {0, 1}},
	}
}

// TestEncodeDecode_RoundTrip verifies that payload and header survive a round trip.
func TestEncodeDecode_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	h, err := Encode(&buf, Header{
		Format:     FormatFFNN,
		Metadata:   map[string]string{"hidden": "relu"},
		Checkpoint: &CheckpointMeta{Epoch: 3, Samples: 100, LearningRate: 0.5},
	}, sampleNetwork())
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, h.Version)
	_, err = uuid.Parse(h.ID)
	require.NoError(t, err)
	assert.False(t, h.Created.IsZero())

	var got testNetwork
	decoded, err := Decode(&buf, FormatFFNN, &got)
	require.NoError(t, err)

	assert.Equal(t, sampleNetwork(), got)
	assert.Equal(t, h.ID, decoded.ID)
	assert.Equal(t, h.Checksum, decoded.Checksum)
	assert.Equal(t, "relu", decoded.Metadata["hidden"])
	require.NotNil(t, decoded.Checkpoint)
	assert.Equal(t, 3, decoded.Checkpoint.Epoch)
}

// TestEncode_UniqueIDs verifies every snapshot gets a fresh id.
func TestEncode_UniqueIDs(t *testing.T) {
	var a, b bytes.Buffer
	ha, err := Encode(&a, Header{Format: FormatCNN}, sampleNetwork())
	require.NoError(t, err)
	hb, err := Encode(&b, Header{Format: FormatCNN}, sampleNetwork())
	require.NoError(t, err)

	assert.NotEqual(t, ha.ID, hb.ID)
	assert.Equal(t, ha.Checksum, hb.Checksum)
}

// TestDecode_Tampered verifies that a modified payload is rejected.
func TestDecode_Tampered(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, Header{Format: FormatFFNN}, sampleNetwork())
	require.NoError(t, err)

	tampered := strings.Replace(buf.String(), `"sizes":[2,3]`, `"sizes":[2,4]`, 1)
	require.NotEqual(t, buf.String(), tampered)

	var got testNetwork
	_, err = Decode(strings.NewReader(tampered), FormatFFNN, &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
}

// TestDecode_Reindented verifies that reformatting keeps the snapshot valid.
func TestDecode_Reindented(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, Header{Format: FormatFFNN}, sampleNetwork())
	require.NoError(t, err)

	var pretty bytes.Buffer
	require.NoError(t, json.Indent(&pretty, buf.Bytes(), "", "  "))

	var got testNetwork
	_, err = Decode(&pretty, FormatFFNN, &got)
	require.NoError(t, err)
	assert.Equal(t, sampleNetwork(), got)
}

// TestDecode_Legacy verifies bare snapshots load as version 0.
func TestDecode_Legacy(t *testing.T) {
	bare, err := json.Marshal(sampleNetwork())
	require.NoError(t, err)

	var got testNetwork
	h, err := Decode(bytes.NewReader(bare), FormatFFNN, &got)
	require.NoError(t, err)
	assert.Equal(t, LegacyVersion, h.Version)
	assert.Equal(t, FormatFFNN, h.Format)
	assert.Equal(t, sampleNetwork(), got)

	_, err = Decode(bytes.NewReader(bare), FormatCNN, &got)
	assert.True(t, errors.Is(err, ErrFormatMismatch))

	_, err = Decode(strings.NewReader(`{"unrelated":1}`), FormatFFNN, &got)
	assert.True(t, errors.Is(err, ErrUnrecognized))

	_, err = Decode(strings.NewReader(`not json`), FormatFFNN, &got)
	assert.True(t, errors.Is(err, ErrUnrecognized))
}

// TestDecode_Errors verifies envelope validation failures.
func TestDecode_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, Header{Format: FormatFFNN}, sampleNetwork())
	require.NoError(t, err)
	valid := buf.String()

	tests := []struct {
		name   string
		data   string
		format string
		target error
	}{
		{
			name:   "format mismatch",
			data:   valid,
			format: FormatCNN,
			target: ErrFormatMismatch,
		},
		{
			name:   "future version",
			data:   strings.Replace(valid, `"version":1`, `"version":2`, 1),
			format: FormatFFNN,
			target: ErrUnsupportedVersion,
		},
		{
			name:   "enveloped version zero",
			data:   strings.Replace(valid, `"version":1`, `"version":0`, 1),
			format: FormatFFNN,
			target: ErrUnsupportedVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testNetwork
			_, err := Decode(strings.NewReader(tt.data), tt.format, &got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

// TestEncode_UnknownFormat verifies that the format is validated on write.
func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, Header{Format: "onnx"}, sampleNetwork())
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "format", verr.Field)
	assert.Zero(t, buf.Len())
}

// TestSaveLoad verifies file round trips and Peek.
func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	saved, err := Save(path, Header{Format: FormatCNN}, sampleNetwork())
	require.NoError(t, err)

	peeked, err := Peek(path)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, peeked.ID)
	assert.Equal(t, FormatCNN, peeked.Format)

	var got testNetwork
	loaded, err := Load(path, FormatCNN, &got)
	require.NoError(t, err)
	assert.Equal(t, saved.Checksum, loaded.Checksum)
	assert.Equal(t, sampleNetwork(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be cleaned up")
}

// TestLoad_Missing verifies the error for a missing file.
func TestLoad_Missing(t *testing.T) {
	var got testNetwork
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), FormatFFNN, &got)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
