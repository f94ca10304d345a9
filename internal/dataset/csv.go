package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ReadCSV reads Kaggle-style digit CSV data:
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// The first row is a header and is skipped. Every record must hold a label
// and rows*cols pixels in [0, 255]. maxSamples <= 0 reads everything.
func ReadCSV(r io.Reader, rows, cols, maxSamples int) (*Raw, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrEmpty, "csv has no header")
		}
		return nil, errors.Wrap(err, "dataset: read csv header")
	}

	size := rows * cols
	raw := &Raw{Rows: rows, Cols: cols}
	for line := 2; maxSamples <= 0 || raw.Len() < maxSamples; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: read csv line %d", line)
		}
		if len(record) != size+1 {
			return nil, errors.Wrapf(ErrImageSize, "line %d has %d fields, want %d", line, len(record), size+1)
		}

		label, err := parseByte(record[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d label", line)
		}
		pixels := make([]byte, size)
		for j := range pixels {
			if pixels[j], err = parseByte(record[j+1]); err != nil {
				return nil, errors.Wrapf(err, "line %d column %d", line, j+2)
			}
		}

		raw.Images = append(raw.Images, pixels)
		raw.Labels = append(raw.Labels, label)
	}

	if raw.Len() == 0 {
		return nil, errors.Wrap(ErrEmpty, "csv has no records")
	}
	return raw, nil
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "dataset: parse %q", s)
	}
	return byte(v), nil
}
