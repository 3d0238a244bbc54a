package output

import (
	"image"

	"github.com/nfnt/resize"
)

// DefaultThumbnailSize bounds both thumbnail dimensions
const DefaultThumbnailSize = 128

// Thumbnail scales img down to fit within maxSize x maxSize, keeping its aspect ratio.
// Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}

// ThumbnailName returns the name a thumbnail of name is stored under
func ThumbnailName(name string) string {
	return name + "_thumb"
}
