package dataset

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
)

// idxImages encodes images in the IDX image format.
func idxImages(t *testing.T, rows, cols int, images ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := []uint32{MagicImages, uint32(len(images)), uint32(rows), uint32(cols)}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, img := range images {
		buf.Write(img)
	}
	return buf.Bytes()
}

// idxLabels encodes labels in the IDX label format.
func idxLabels(t *testing.T, labels ...byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{MagicLabels, uint32(len(labels))}))
	buf.Write(labels)
	return buf.Bytes()
}

// TestVectors tests conversion into FFNN samples.
func TestVectors(t *testing.T) {
	samples, err := Vectors([][]byte{{0, 255, 51}, {255, 0, 0}}, []byte{3, 0}, NumClasses)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	s := samples[0]
	assert.Equal(t, matrix.Shape{Rows: 3, Cols: 1}, s.Input.Shape())
	assert.Equal(t, []float64{0, 1, 0.2}, s.Input.ToSlice())
	assert.Equal(t, matrix.Shape{Rows: 10, Cols: 1}, s.Target.Shape())
	assert.Equal(t, 3, s.Label())
	assert.Equal(t, 1.0, s.Target.Sum())
}

// TestGrids tests conversion into CNN samples.
func TestGrids(t *testing.T) {
	img := make([]byte, 6)
	img[4] = 255
	samples, err := Grids([][]byte{img}, []byte{9}, 2, 3, NumClasses)
	require.NoError(t, err)

	s := samples[0]
	assert.Equal(t, matrix.Shape{Rows: 2, Cols: 3}, s.Input.Shape())
	assert.Equal(t, 1.0, s.Input.At(1, 1))
	assert.Equal(t, 9, s.Label())

	_, err = Grids([][]byte{img}, []byte{9}, 3, 3, NumClasses)
	assert.True(t, errors.Is(err, ErrImageSize))
}

// TestConvert_Errors tests converter preconditions.
func TestConvert_Errors(t *testing.T) {
	_, err := Vectors([][]byte{{1}}, []byte{1, 2}, NumClasses)
	assert.True(t, errors.Is(err, ErrCountMismatch))

	_, err = Vectors(nil, nil, NumClasses)
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = Vectors([][]byte{{1}}, []byte{10}, NumClasses)
	assert.True(t, errors.Is(err, nn.ErrLabelOutOfRange))

	_, err = Vectors([][]byte{{1}, {1, 2}}, []byte{1, 2}, NumClasses)
	assert.True(t, errors.Is(err, ErrImageSize))

	_, err = Grids([][]byte{{1}}, nil, 1, 1, NumClasses)
	assert.True(t, errors.Is(err, ErrCountMismatch))
}

// TestStandardization tests mean and population standard deviation.
func TestStandardization(t *testing.T) {
	samples := []nn.Sample{
		{Input: matrix.VectorFromSlice([]float64{1, 5})},
		{Input: matrix.VectorFromSlice([]float64{3, 5})},
	}

	mean, std, err := Standardization(samples)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, mean.ToSlice())
	assert.Equal(t, []float64{1, 0}, std.ToSlice())

	require.NoError(t, ApplyStandardization(samples, mean, std))
	assert.Equal(t, []float64{-1, 0}, samples[0].Input.ToSlice())
	assert.Equal(t, []float64{1, 0}, samples[1].Input.ToSlice())

	_, _, err = Standardization(nil)
	assert.True(t, errors.Is(err, ErrEmpty))

	mixed := append(samples, nn.Sample{Input: matrix.New(3, 1)})
	_, _, err = Standardization(mixed)
	assert.True(t, errors.Is(err, ErrImageSize))

	err = ApplyStandardization(samples, matrix.New(3, 1), matrix.New(3, 1))
	assert.True(t, errors.Is(err, ErrImageSize))
}

// TestSplit tests the held-out split.
func TestSplit(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	head, held, err := Split(s, 0.2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, head)
	assert.Equal(t, []int{8, 9}, held)

	head, held, err = Split(s, 0)
	require.NoError(t, err)
	assert.Len(t, head, 10)
	assert.Empty(t, held)

	_, _, err = Split(s, 1.5)
	assert.True(t, errors.Is(err, ErrFraction))
}

// TestXOR tests the built-in XOR set.
func TestXOR(t *testing.T) {
	samples := XOR()
	require.Len(t, samples, 4)
	want := []int{0, 1, 1, 0}
	for i, s := range samples {
		assert.Equal(t, matrix.Shape{Rows: 2, Cols: 1}, s.Input.Shape())
		assert.Equal(t, want[i], s.Label())
	}
}

// TestSynthetic tests the generated bar images.
func TestSynthetic(t *testing.T) {
	raw := Synthetic(25, 28, 28, rand.New(rand.NewSource(1)))
	require.Equal(t, 25, raw.Len())
	assert.Equal(t, 28, raw.Rows)

	for i, img := range raw.Images {
		require.Len(t, img, 28*28)
		assert.Equal(t, byte(i%10), raw.Labels[i])
	}

	// Digit 9 lights the bottom rows, digit 0 the top rows.
	assert.GreaterOrEqual(t, raw.Images[9][27*28+14], byte(204))
	assert.Less(t, raw.Images[0][27*28+14], byte(32))
	assert.GreaterOrEqual(t, raw.Images[0][0*28+14], byte(204))

	samples, err := raw.Grids()
	require.NoError(t, err)
	assert.Len(t, samples, 25)
}

// TestReadIDX tests decoding both IDX kinds.
func TestReadIDX(t *testing.T) {
	data := idxImages(t, 2, 2, []byte{1, 2, 3, 4}, []byte{5, 6, 7, 8})

	images, rows, cols, err := ReadIDXImages(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}, images)

	labels, err := ReadIDXLabels(bytes.NewReader(idxLabels(t, 7, 1)))
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 1}, labels)

	idx, err := ReadIDX(bytes.NewReader(idxLabels(t, 3)))
	require.NoError(t, err)
	assert.Equal(t, uint32(MagicLabels), idx.Magic)
	assert.Nil(t, idx.Images)
}

// TestReadIDX_UnknownFormat tests that unrecognized headers are fatal.
func TestReadIDX_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{2050, 1}))

	_, err := ReadIDX(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, _, _, err = ReadIDXImages(bytes.NewReader(idxLabels(t, 1)))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = ReadIDXLabels(bytes.NewReader(idxImages(t, 1, 1, []byte{0})))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

// TestReadIDX_Truncated tests short files.
func TestReadIDX_Truncated(t *testing.T) {
	data := idxImages(t, 2, 2, []byte{1, 2, 3, 4})
	_, err := ReadIDX(bytes.NewReader(data[:len(data)-1]))
	assert.Error(t, err)

	_, err = ReadIDX(bytes.NewReader(nil))
	assert.Error(t, err)
}

// TestLoadMNIST tests file discovery, gzip and sample limits.
func TestLoadMNIST(t *testing.T) {
	dir := t.TempDir()

	images := idxImages(t, 1, 2, []byte{0, 255}, []byte{255, 0}, []byte{9, 9})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-images-idx3-ubyte"), images, 0o600))

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write(idxLabels(t, 4, 2, 0))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "train-labels.idx1-ubyte.gz"), gz.Bytes(), 0o600))

	raw, err := LoadMNIST(dir, Train, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, raw.Len())
	assert.Equal(t, []byte{4, 2}, raw.Labels)
	assert.Equal(t, 1, raw.Rows)
	assert.Equal(t, 2, raw.Cols)

	_, err = LoadMNIST(dir, Test, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestLoadMNIST_CountMismatch tests mismatched image and label files.
func TestLoadMNIST_CountMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-images-idx3-ubyte"),
		idxImages(t, 1, 1, []byte{1}, []byte{2}), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t10k-labels-idx1-ubyte"),
		idxLabels(t, 1), 0o600))

	_, err := LoadMNIST(dir, Test, 0)
	assert.True(t, errors.Is(err, ErrCountMismatch))
}

// TestReadCSV tests the CSV reader.
func TestReadCSV(t *testing.T) {
	data := "label,p0,p1,p2,p3\n5,0,0,12,255\n0,1,2,3,4\n7,0,0,0,0\n"

	raw, err := ReadCSV(strings.NewReader(data), 2, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 2, raw.Len())
	assert.Equal(t, []byte{5, 0}, raw.Labels)
	assert.Equal(t, []byte{0, 0, 12, 255}, raw.Images[0])

	all, err := ReadCSV(strings.NewReader(data), 2, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Len())

	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "label,p0,p1,p2,p3\n"},
		{"short record", "label,p0,p1,p2,p3\n5,0,0,12\n"},
		{"pixel out of range", "label,p0,p1,p2,p3\n5,0,0,12,256\n"},
		{"bad label", "label,p0,p1,p2,p3\nx,0,0,12,255\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data), 2, 2, 0)
			assert.Error(t, err)
		})
	}
}
