package renderer

import (
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	Bands          int           // Number of row bands rendered
	Workers        int           // Number of parallel workers used
	Duration       time.Duration // Wall clock time of the render
}

// merge folds the stats of one band into the totals
func (s *RenderStats) merge(band RenderStats) {
	s.TotalPixels += band.TotalPixels
	s.TotalSamples += band.TotalSamples
	s.Bands++
}

// finalize calculates derived statistics after all bands are rendered
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // Linear RGB sum
	SampleCount int
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average linear color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// RGB8 gamma-corrects the average color (gamma 2) and quantizes it to bytes
func (ps *PixelStats) RGB8() (r, g, b uint8) {
	c := ps.GetColor().GammaCorrect(2.0).Clamp(0.0, 0.999)
	return uint8(256 * c.X), uint8(256 * c.Y), uint8(256 * c.Z)
}
