package serialization

import (
	"encoding/json"
	"time"
)

// Format constants.
const (
	FormatFFNN = "digitnet.ffnn"
	FormatCNN  = "digitnet.cnn"

	LegacyVersion  = 0 // Bare snapshot without envelope
	CurrentVersion = 1 // Envelope with uuid and SHA-256 payload checksum
)

// Header is the envelope of a snapshot file.
type Header struct {
	Format     string            `json:"format"`               // FormatFFNN or FormatCNN
	Version    int               `json:"version"`              // Envelope version
	ID         string            `json:"id,omitempty"`         // Random snapshot id (uuid)
	Created    time.Time         `json:"created"`              // When the snapshot was written
	Checksum   string            `json:"checksum,omitempty"`   // Hex SHA-256 of the compact payload
	Metadata   map[string]string `json:"metadata,omitempty"`   // Custom metadata
	Checkpoint *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch          int     `json:"epoch"`                    // Completed training epochs
	Samples        int     `json:"samples"`                  // Training set size
	LearningRate   float64 `json:"learning_rate"`            // η
	Regularization float64 `json:"regularization,omitempty"` // λ
	MiniBatchSize  int     `json:"mini_batch_size,omitempty"`
	Correct        int     `json:"correct,omitempty"` // Test samples classified correctly
	Total          int     `json:"total,omitempty"`   // Test set size
}

type envelope struct {
	Header
	Payload json.RawMessage `json:"payload"`
}

// legacyFormat infers the format of a bare snapshot from its top-level keys.
func legacyFormat(fields map[string]json.RawMessage) string {
	if _, ok := fields["sizes"]; ok {
		return FormatFFNN
	}
	if _, ok := fields["conv"]; ok {
		return FormatCNN
	}
	return ""
}
