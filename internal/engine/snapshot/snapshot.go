// Package snapshot turns GL pixel readbacks into image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file extensions without an encoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output image encoding.
type Format int

const (
	PNG Format = iota
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	default:
		return "png"
	}
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// FromGLPixels copies bottom-up RGBA rows, as returned by glReadPixels, into
// a top-down image.
func FromGLPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Encode writes img to w.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

// Save writes img to path, choosing the encoding from the extension and
// creating missing parent directories.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return file.Close()
}

// Capture names timestamped screenshot files in a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time

	// last stamp handed out and how many names used it
	last string
	seq  int
}

// NewCapture returns a capture writing <dir>/<prefix>_<timestamp>.png.
// Names requested within the same millisecond get a _2, _3, ... suffix.
func NewCapture(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// NextFilename returns the path the next screenshot will be written to.
func (c *Capture) NextFilename() string {
	stamp := c.now().Format("2006-01-02_15-04-05.000")
	if stamp == c.last {
		c.seq++
	} else {
		c.last, c.seq = stamp, 1
	}
	name := fmt.Sprintf("%s_%s.png", c.prefix, stamp)
	if c.seq > 1 {
		name = fmt.Sprintf("%s_%s_%d.png", c.prefix, stamp, c.seq)
	}
	if c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}
