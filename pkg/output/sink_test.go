package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

type failingSink struct {
	err   error
	calls int
}

func (f *failingSink) Write(ctx context.Context, name string, img image.Image) error {
	f.calls++
	return f.err
}

func TestEncodePNG(t *testing.T) {
	img := testImage(8, 4)
	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, g, b, _ := decoded.At(5, 3).RGBA()
	if r>>8 != 5 || g>>8 != 3 || b>>8 != 128 {
		t.Errorf("Pixel (5,3) changed: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestFileSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	sink := NewFileSink(dir)

	if err := sink.Write(context.Background(), "render", testImage(4, 4)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	filename := filepath.Join(dir, "render.png")
	if sink.Path("render") != filename {
		t.Errorf("Expected path %s, got %s", filename, sink.Path("render"))
	}
	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()
	if _, err := png.Decode(file); err != nil {
		t.Errorf("Output file is not a valid PNG: %v", err)
	}
}

func TestFileSink_WriteFailure(t *testing.T) {
	// A regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	sink := NewFileSink(filepath.Join(blocker, "out"))
	err := sink.Write(context.Background(), "render", testImage(2, 2))
	if err == nil {
		t.Fatal("Expected error when the directory cannot be created")
	}
	if !strings.Contains(err.Error(), "output directory") {
		t.Errorf("Expected wrapped directory error, got %v", err)
	}
}

func TestFileSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	err := NewFileSink(dir).Write(ctx, "render", testImage(2, 2))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "render.png")); statErr == nil {
		t.Error("No file should be written for a canceled context")
	}
}

func TestWriteAll(t *testing.T) {
	errFirst := errors.New("first sink down")
	errSecond := errors.New("second sink down")
	first := &failingSink{err: errFirst}
	second := &failingSink{err: errSecond}
	dir := t.TempDir()

	err := WriteAll(context.Background(), []Sink{first, NewFileSink(dir), second}, "render", testImage(2, 2))
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Errorf("Expected both failures joined, got %v", err)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Errorf("Expected each sink called once, got %d and %d", first.calls, second.calls)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "render.png")); statErr != nil {
		t.Errorf("Healthy sink should still write: %v", statErr)
	}

	if err := WriteAll(context.Background(), []Sink{NewFileSink(dir)}, "ok", testImage(2, 2)); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
