// Package dataset converts decoded digit images into training samples.
//
// The engines consume plain in-memory samples: column vectors for the FFNN
// and 2-D grids for the CNN, with pixel intensities scaled to [0, 1] and
// one-hot targets. This package owns everything before that point: IDX and
// CSV decoding, normalization, standardization statistics, splits and small
// built-in data sets.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// NumClasses is the number of digit classes.
const NumClasses = 10

// Errors returned by the converters and readers.
var (
	ErrUnknownFormat = errors.New("dataset: unknown file format")
	ErrCountMismatch = errors.New("dataset: image and label counts differ")
	ErrImageSize     = errors.New("dataset: image size does not match")
	ErrEmpty         = errors.New("dataset: no samples")
	ErrFraction      = errors.New("dataset: split fraction must be in [0, 1]")
)

// Raw holds undecoded images and their labels.
type Raw struct {
	Images [][]byte // One row-major Rows*Cols byte slice per image
	Labels []byte
	Rows   int
	Cols   int
}

// Len returns the number of images.
func (r *Raw) Len() int {
	return len(r.Images)
}

// Limit truncates r to at most n samples. n <= 0 keeps everything.
func (r *Raw) Limit(n int) {
	if n > 0 && n < len(r.Images) {
		r.Images = r.Images[:n]
		r.Labels = r.Labels[:n]
	}
}

// Vectors converts images into FFNN samples: rows*cols x 1 column vectors of
// pixel/255 with one-hot targets of length classes.
func Vectors(images [][]byte, labels []byte, classes int) ([]nn.Sample, error) {
	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrCountMismatch, "%d images, %d labels", len(images), len(labels))
	}
	if len(images) == 0 {
		return nil, ErrEmpty
	}
	size := len(images[0])
	samples := make([]nn.Sample, len(images))
	for i, img := range images {
		if len(img) != size {
			return nil, errors.Wrapf(ErrImageSize, "image %d has %d pixels, want %d", i, len(img), size)
		}
		target, err := nn.OneHot(int(labels[i]), classes)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		input := matrix.New(size, 1)
		scale(input.Data(), img)
		samples[i] = nn.Sample{Input: input, Target: target}
	}
	return samples, nil
}

// Grids converts images into CNN samples: rows x cols grids of pixel/255 with
// one-hot targets of length classes.
func Grids(images [][]byte, labels []byte, rows, cols, classes int) ([]nn.Sample, error) {
	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrCountMismatch, "%d images, %d labels", len(images), len(labels))
	}
	if len(images) == 0 {
		return nil, ErrEmpty
	}
	samples := make([]nn.Sample, len(images))
	for i, img := range images {
		if len(img) != rows*cols {
			return nil, errors.Wrapf(ErrImageSize, "image %d has %d pixels, want %dx%d", i, len(img), rows, cols)
		}
		target, err := nn.OneHot(int(labels[i]), classes)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		input := matrix.New(rows, cols)
		scale(input.Data(), img)
		samples[i] = nn.Sample{Input: input, Target: target}
	}
	return samples, nil
}

// Vectors converts r with Vectors.
func (r *Raw) Vectors() ([]nn.Sample, error) {
	return Vectors(r.Images, r.Labels, NumClasses)
}

// Grids converts r with Grids.
func (r *Raw) Grids() ([]nn.Sample, error) {
	return Grids(r.Images, r.Labels, r.Rows, r.Cols, NumClasses)
}

func scale(dst []float64, pixels []byte) {
	for j, p := range pixels {
		dst[j] = float64(p) / 255
	}
}

// Split divides s into a leading part and a trailing held-out part holding
// int(len(s)*frac) elements. Both share s's backing array.
func Split[T any](s []T, frac float64) (head, held []T, err error) {
	if frac < 0 || frac > 1 {
		return nil, nil, errors.Wrapf(ErrFraction, "got %g", frac)
	}
	n := len(s) - int(float64(len(s))*frac)
	return s[:n:n], s[n:], nil
}
