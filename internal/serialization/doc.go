// Package serialization stores trained digitnet networks as JSON snapshots.
//
// A snapshot file wraps the structural JSON of a network in a small envelope:
//
//	{
//	  "format":   "digitnet.ffnn" | "digitnet.cnn",
//	  "version":  1,
//	  "id":       "<uuid>",
//	  "created":  "<RFC 3339 time>",
//	  "checksum": "<hex SHA-256 of the compact payload>",
//	  "metadata": {"key": "value"},
//	  "checkpoint": {"epoch": 3, ...},
//	  "payload":  { ...network snapshot... }
//	}
//
// Bare network snapshots without an envelope are accepted as version 0; their
// format is inferred from the payload keys.
//
// Example usage:
//
//	// Save
//	h, err := serialization.Save("model.json", serialization.Header{
//	    Format: serialization.FormatFFNN,
//	}, net.Snapshot())
//
//	// Load
//	var snap ffnn.Snapshot
//	h, err = serialization.Load("model.json", serialization.FormatFFNN, &snap)
package serialization
