// Package imageio writes framebuffers to image files.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/mandelzoom/internal/render"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output encoding.
type Format int

const (
	None Format = iota
	PPM
	PNG
	BMP
	TIFF
)

var formatNames = map[Format]string{
	None: "none",
	PPM:  "ppm",
	PNG:  "png",
	BMP:  "bmp",
	TIFF: "tiff",
}

func (f Format) String() string { return formatNames[f] }

var ErrUnknownFormat = errors.New("imageio: unrecognized image extension")

// WriteError reports a failure to write an output file.
type WriteError struct {
	Path    string
	Wrapped error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("imageio: write %s: %v", e.Path, e.Wrapped)
}

func (e *WriteError) Unwrap() error {
	return e.Wrapped
}

// ExtToFormat returns the format for a filename extension, with or without
// the leading dot.
func ExtToFormat(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "ppm":
		return PPM, nil
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// WritePPM writes fb as a binary PPM: a "P6\n<w> <h> 255\n" header followed by
// raw RGB bytes, rows top to bottom.
func WritePPM(w io.Writer, fb *render.Framebuffer) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d %d\n", fb.Width, fb.Height, 255); err != nil {
		return err
	}
	_, err := w.Write(fb.Pix)
	return err
}

// Write encodes fb to w in format f.
func Write(w io.Writer, fb *render.Framebuffer, f Format) error {
	switch f {
	case PPM:
		return WritePPM(w, fb)
	case PNG:
		return png.Encode(w, fb)
	case BMP:
		return bmp.Encode(w, fb)
	case TIFF:
		return tiff.Encode(w, fb, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Save writes fb to path, choosing the encoder from the extension.
// The file is closed on every return path.
func Save(path string, fb *render.Framebuffer) (err error) {
	f, err := ExtToFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &WriteError{Path: path, Wrapped: cerr}
		}
	}()

	bw := bufio.NewWriter(file)
	if err := Write(bw, fb, f); err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}
	if err := bw.Flush(); err != nil {
		return &WriteError{Path: path, Wrapped: err}
	}
	return nil
}
