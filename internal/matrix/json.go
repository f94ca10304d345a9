package matrix

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonMatrix is the structural snapshot layout: dimensions plus nested rows.
type jsonMatrix struct {
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Data [][]float64 `json:"data"`
}

// MarshalJSON encodes m as {"rows":R,"cols":C,"data":[[...],...]}.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMatrix{Rows: m.rows, Cols: m.cols, Data: m.ToRows()})
}

// UnmarshalJSON decodes the layout produced by MarshalJSON. The nested data
// must agree with the declared dimensions.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var jm jsonMatrix
	if err := json.Unmarshal(b, &jm); err != nil {
		return errors.Wrap(err, "matrix: decode")
	}
	if jm.Rows < 0 || jm.Cols < 0 || len(jm.Data) != jm.Rows {
		return errors.Wrapf(ErrBadShape, "declared %dx%d, got %d rows", jm.Rows, jm.Cols, len(jm.Data))
	}
	data := make([]float64, 0, jm.Rows*jm.Cols)
	for r, row := range jm.Data {
		if len(row) != jm.Cols {
			return errors.Wrapf(ErrBadShape, "row %d has %d columns, want %d", r, len(row), jm.Cols)
		}
		data = append(data, row...)
	}
	m.rows, m.cols, m.data = jm.Rows, jm.Cols, data
	return nil
}
