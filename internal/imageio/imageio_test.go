package imageio

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mandelzoom/internal/render"
	"golang.org/x/image/bmp"
)

func redBlue() *render.Framebuffer {
	fb := render.NewFramebuffer(2, 1)
	fb.Set(0, 0, color.RGBA{255, 0, 0, 255})
	fb.Set(1, 0, color.RGBA{0, 0, 255, 255})
	return fb
}

func TestWritePPM_Layout(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, redBlue()); err != nil {
		t.Fatal(err)
	}

	header := "P6\n2 1 255\n"
	got := buf.Bytes()
	if !bytes.HasPrefix(got, []byte(header)) {
		t.Fatalf("header = %q", got[:min(len(got), len(header))])
	}
	body := got[len(header):]
	want := []byte{255, 0, 0, 0, 0, 255}
	if !bytes.Equal(body, want) {
		t.Errorf("body = %v, want %v", body, want)
	}
}

func TestExtToFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".ppm", PPM},
		{"PNG", PNG},
		{".bmp", BMP},
		{".tif", TIFF},
		{"tiff", TIFF},
	}
	for _, tt := range tests {
		got, err := ExtToFormat(tt.ext)
		if err != nil || got != tt.want {
			t.Errorf("ExtToFormat(%q) = %v, %v; want %v", tt.ext, got, err, tt.want)
		}
	}
	if _, err := ExtToFormat(".jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := ExtToFormat(""); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat for empty ext, got %v", err)
	}
}

func TestSave_PPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")
	if err := Save(path, redBlue()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]byte("P6\n2 1 255\n"), 255, 0, 0, 0, 0, 255)
	if !bytes.Equal(data, want) {
		t.Errorf("file = %v, want %v", data, want)
	}
}

func TestSave_DecodesBack(t *testing.T) {
	dir := t.TempDir()
	fb := redBlue()

	pngPath := filepath.Join(dir, "out.png")
	if err := Save(pngPath, fb); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r != 0 || g != 0 || b>>8 != 255 {
		t.Errorf("png pixel (1,0) = %d %d %d", r, g, b)
	}

	bmpPath := filepath.Join(dir, "out.bmp")
	if err := Save(bmpPath, fb); err != nil {
		t.Fatal(err)
	}
	bf, err := os.Open(bmpPath)
	if err != nil {
		t.Fatal(err)
	}
	defer bf.Close()
	bimg, err := bmp.Decode(bf)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ = bimg.At(0, 0).RGBA()
	if r>>8 != 255 {
		t.Errorf("bmp pixel (0,0) red = %d", r>>8)
	}

	if err := Save(filepath.Join(dir, "out.tiff"), fb); err != nil {
		t.Fatal(err)
	}
}

func TestSave_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.ppm")
	err := Save(path, redBlue())

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if we.Path != path {
		t.Errorf("path = %q", we.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}
