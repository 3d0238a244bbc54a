package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Sink receives finished images
type Sink interface {
	// Write stores img under name; sinks add their own file extension
	Write(ctx context.Context, name string, img image.Image) error
}

// WriteAll writes img to every sink. A failing sink does not stop the others;
// all failures are returned joined.
func WriteAll(ctx context.Context, sinks []Sink, name string, img image.Image) error {
	var errs []error
	for _, sink := range sinks {
		if err := sink.Write(ctx, name, img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EncodePNG encodes img as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// FileSink writes PNG files into a directory
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Path returns the file path used for name
func (f *FileSink) Path(name string) string {
	return filepath.Join(f.Dir, name+".png")
}

// Write encodes img and saves it as Dir/name.png, creating the directory if needed
func (f *FileSink) Write(ctx context.Context, name string, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodePNG(img)
	if err != nil {
		return err
	}

	filename := f.Path(name)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
