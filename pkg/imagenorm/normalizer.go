// Package imagenorm turns arbitrary uploaded images into bounded-size JPEGs
// suitable for shipping to the AI gateway. The transform is pure over the
// input bytes; callers keep their original upload untouched.
package imagenorm

import (
	"bytes"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxEdge     = 1024
	DefaultQuality     = 75
	DefaultRetry       = 60
	DefaultMaxByteSize = 2_000_000
)

var ErrInvalidImage = errors.New("image normalizer: cannot decode image")

type Options struct {
	MaxEdge     int // longer-edge bound in pixels
	Quality     int // first-pass JPEG quality
	RetryQual   int // second-pass quality when still over MaxByteSize
	MaxByteSize int // encoded size ceiling in bytes
}

func DefaultOptions() Options {
	return Options{
		MaxEdge:     DefaultMaxEdge,
		Quality:     DefaultQuality,
		RetryQual:   DefaultRetry,
		MaxByteSize: DefaultMaxByteSize,
	}
}

// Image is a normalized upload ready for transmission.
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

func Normalize(data []byte, filename string) (*Image, error) {
	return NormalizeWith(data, filename, DefaultOptions())
}

func NormalizeWith(data []byte, filename string, opts Options) (*Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImage
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > opts.MaxEdge || h > opts.MaxEdge {
		img = imaging.Fit(img, opts.MaxEdge, opts.MaxEdge, imaging.Lanczos)
	}

	encoded, err := encodeJPEG(img, opts.Quality)
	if err != nil {
		return nil, ErrInvalidImage
	}

	// One lower-quality retry when the first pass blows the ceiling; no
	// further attempts after that.
	if len(encoded) > opts.MaxByteSize {
		encoded, err = encodeJPEG(img, opts.RetryQual)
		if err != nil {
			return nil, ErrInvalidImage
		}
	}

	return &Image{
		Data:        encoded,
		Filename:    filename,
		ContentType: "image/jpeg",
	}, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
