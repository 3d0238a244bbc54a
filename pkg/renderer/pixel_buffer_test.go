package renderer

import (
	"image/color"
	"testing"
)

// setRGB writes one pixel through the row-major layout
func setRGB(b *PixelBuffer, x, y int, r, g, bl uint8) {
	i := y*b.Stride() + 3*x
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

func TestPixelBuffer_Layout(t *testing.T) {
	buffer := NewPixelBuffer(4, 3)
	if len(buffer.Pix) != 4*3*3 {
		t.Fatalf("Expected %d bytes, got %d", 4*3*3, len(buffer.Pix))
	}

	setRGB(buffer, 2, 1, 10, 20, 30)

	// Row-major, 3 bytes per pixel
	offset := 1*buffer.Stride() + 2*3
	if buffer.Pix[offset] != 10 || buffer.Pix[offset+1] != 20 || buffer.Pix[offset+2] != 30 {
		t.Errorf("Pixel stored at the wrong offset: %v", buffer.Pix)
	}
	if r, g, b := buffer.RGBAt(2, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("RGBAt returned (%d,%d,%d)", r, g, b)
	}

	rows := buffer.Rows(1, 2)
	if len(rows) != buffer.Stride() || rows[6] != 10 {
		t.Errorf("Rows(1,2) returned the wrong slice")
	}
}

func TestPixelBuffer_Image(t *testing.T) {
	buffer := NewPixelBuffer(2, 2)
	setRGB(buffer, 1, 0, 255, 128, 0)

	if b := buffer.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("Unexpected bounds %v", b)
	}
	if got := buffer.At(1, 0); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("Unexpected color %v", got)
	}
	if got := buffer.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("Expected transparent outside bounds, got %v", got)
	}

	rgba := buffer.ToRGBA()
	if got := rgba.RGBAAt(1, 0); got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("ToRGBA lost the pixel: %v", got)
	}
}
