package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer is a row-major RGB8 image with row 0 at the top.
// It implements image.Image so it can be handed straight to encoders.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel, Width*3 bytes per row
}

// NewPixelBuffer allocates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
	}
}

// Stride returns the number of bytes per row
func (b *PixelBuffer) Stride() int {
	return 3 * b.Width
}

// Rows returns the sub-slice covering rows [minY, maxY)
func (b *PixelBuffer) Rows(minY, maxY int) []uint8 {
	return b.Pix[minY*b.Stride() : maxY*b.Stride()]
}

// RGBAt returns the color bytes at (x, y)
func (b *PixelBuffer) RGBAt(x, y int) (r, g, bl uint8) {
	i := y*b.Stride() + 3*x
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// ColorModel implements image.Image
func (b *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image
func (b *PixelBuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(b.Bounds()) {
		return color.RGBA{}
	}
	r, g, bl := b.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: bl, A: 255}
}

// ToRGBA converts the buffer to an *image.RGBA
func (b *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.RGBAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: 255})
		}
	}
	return img
}
