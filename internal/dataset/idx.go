package dataset

import (
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// IDX magic numbers.
const (
	MagicLabels = 2049 // 0x00000801
	MagicImages = 2051 // 0x00000803
)

// IDX is the decoded content of one IDX file. Exactly one of Images and
// Labels is set.
type IDX struct {
	Magic  uint32
	Images [][]byte
	Labels []byte
	Rows   int
	Cols   int
}

// ReadIDX decodes an IDX image or label file, telling them apart by the
// magic number. Any other header yields ErrUnknownFormat.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func ReadIDX(r io.Reader) (*IDX, error) {
	var magic uint32
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "dataset: read magic")
	}

	switch magic {
	case MagicImages:
		var header [3]uint32
		if err := binary.Read(r, binary.BigEndian, &header); err != nil {
			return nil, errors.Wrap(err, "dataset: read image header")
		}
		count, rows, cols := int(header[0]), int(header[1]), int(header[2])

		data := make([]byte, count*rows*cols)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, errors.Wrapf(err, "dataset: read %d images", count)
		}
		images := make([][]byte, count)
		size := rows * cols
		for i := range images {
			images[i] = data[i*size : (i+1)*size : (i+1)*size]
		}
		return &IDX{Magic: magic, Images: images, Rows: rows, Cols: cols}, nil

	case MagicLabels:
		var count uint32
		if err := binary.Read(r, binary.BigEndian, &count); err != nil {
			return nil, errors.Wrap(err, "dataset: read label header")
		}
		labels := make([]byte, count)
		if _, err := io.ReadFull(r, labels); err != nil {
			return nil, errors.Wrapf(err, "dataset: read %d labels", count)
		}
		return &IDX{Magic: magic, Labels: labels}, nil

	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "magic %d", magic)
	}
}

// ReadIDXImages decodes an IDX image file.
func ReadIDXImages(r io.Reader) (images [][]byte, rows, cols int, err error) {
	idx, err := ReadIDX(r)
	if err != nil {
		return nil, 0, 0, err
	}
	if idx.Magic != MagicImages {
		return nil, 0, 0, errors.Wrapf(ErrUnknownFormat, "magic %d, want %d", idx.Magic, MagicImages)
	}
	return idx.Images, idx.Rows, idx.Cols, nil
}

// ReadIDXLabels decodes an IDX label file.
func ReadIDXLabels(r io.Reader) ([]byte, error) {
	idx, err := ReadIDX(r)
	if err != nil {
		return nil, err
	}
	if idx.Magic != MagicLabels {
		return nil, errors.Wrapf(ErrUnknownFormat, "magic %d, want %d", idx.Magic, MagicLabels)
	}
	return idx.Labels, nil
}

// Split names for LoadMNIST.
const (
	Train = "train"
	Test  = "t10k"
)

// LoadMNIST loads the train or t10k split from dir.
//
// Both the dash and dot spellings of the official file names are accepted
// (train-images-idx3-ubyte, train-images.idx3-ubyte), optionally gzipped.
// maxSamples <= 0 loads everything.
func LoadMNIST(dir, split string, maxSamples int) (*Raw, error) {
	var images [][]byte
	var rows, cols int
	err := openFirst(dir, split, "images", "idx3-ubyte", func(r io.Reader) error {
		var err error
		images, rows, cols, err = ReadIDXImages(r)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load images")
	}

	var labels []byte
	err = openFirst(dir, split, "labels", "idx1-ubyte", func(r io.Reader) error {
		var err error
		labels, err = ReadIDXLabels(r)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load labels")
	}

	if len(images) != len(labels) {
		return nil, errors.Wrapf(ErrCountMismatch, "%d images, %d labels", len(images), len(labels))
	}

	raw := &Raw{Images: images, Labels: labels, Rows: rows, Cols: cols}
	raw.Limit(maxSamples)
	return raw, nil
}

func openFirst(dir, split, kind, ext string, read func(io.Reader) error) error {
	var candidates []string
	for _, sep := range []string{"-", "."} {
		name := split + "-" + kind + sep + ext
		candidates = append(candidates, name, name+".gz")
	}

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		//nolint:gosec // G304: Data directory comes from user input.
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "dataset: open")
		}
		defer f.Close()

		var r io.Reader = f
		if strings.HasSuffix(name, ".gz") {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return errors.Wrapf(err, "dataset: gunzip %s", path)
			}
			defer gz.Close()
			r = gz
		}
		return errors.Wrap(read(r), path)
	}

	return errors.Wrapf(os.ErrNotExist, "dataset: no %s file for %q in %s (tried %s)",
		kind, split, dir, strings.Join(candidates, ", "))
}
