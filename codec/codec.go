// Package codec reads and writes the images consumed and produced by the compositor.
//
// Every image is decoded into an 8-bit straight-alpha RGBA buffer. The standard library
// formats (PNG, JPEG, GIF) are supported, as are BMP, TIFF and WebP from golang.org/x/image.
// WebP can only be decoded.
package codec

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/BeatGlow/compose/pixel"
)

// Errors
var (
	ErrUnsupportedFormat = errors.New("codec: unsupported image format")
)

// Format is an image file format.
type Format string

// Supported encoding formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// JPEGQuality is used when encoding JPEG images.
var JPEGQuality = 90

// FormatFor picks the encoding format from the extension of path.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// DecodeError is returned when a source image can't be read or parsed.
type DecodeError struct {
	Path string
	Err  error
}

func (err *DecodeError) Error() string {
	if err.Path == "" {
		return "codec: decode: " + err.Err.Error()
	}
	return fmt.Sprintf("codec: decode %s: %v", err.Path, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// EncodeError is returned when an image can't be encoded or its destination can't be written.
type EncodeError struct {
	Path string
	Err  error
}

func (err *EncodeError) Error() string {
	if err.Path == "" {
		return "codec: encode: " + err.Err.Error()
	}
	return fmt.Sprintf("codec: encode %s: %v", err.Path, err.Err)
}

func (err *EncodeError) Unwrap() error {
	return err.Err
}

// Decode an image of any registered format into an RGBA8 buffer. The format name is returned
// along with the buffer.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	return pixel.Convert(img), name, nil
}

// Open decodes the image file at path.
func Open(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	if err != nil {
		err.(*DecodeError).Path = path
		return nil, err
	}
	return img, nil
}

// Encode writes img to w in the requested format.
func Encode(w io.Writer, img image.Image, format Format) (err error) {
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case GIF:
		err = gif.Encode(w, img, nil)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

// Save encodes img to path, picking the format from the file extension. A partially
// written file is removed.
func Save(path string, img image.Image) error {
	format, err := FormatFor(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if err = Encode(f, img, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		err.(*EncodeError).Path = path
		return err
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(path)
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}
