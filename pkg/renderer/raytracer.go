package renderer

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

var (
	backgroundBottom = core.NewVec3(1.0, 1.0, 1.0) // white
	backgroundTop    = core.NewVec3(0.5, 0.7, 1.0) // sky blue
)

// ImageConfig describes the output image and its sampling budget
type ImageConfig struct {
	AspectRatio     float64 // Width / height, shared with the camera
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
}

// DefaultImageConfig returns sensible default values
func DefaultImageConfig() ImageConfig {
	return NewImageConfig(400, 16.0/9.0, 100, 50)
}

// NewImageConfig derives the height from width and aspect ratio
func NewImageConfig(width int, aspectRatio float64, samplesPerPixel, maxDepth int) ImageConfig {
	return ImageConfig{
		AspectRatio:     aspectRatio,
		Width:           width,
		Height:          max(1, int(float64(width)/aspectRatio)),
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
	}
}

// Validate checks that the configuration describes a renderable image
func (c ImageConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// RenderConfig controls how a render is scheduled
type RenderConfig struct {
	NumWorkers  int   // Number of parallel workers (0 = use CPU count)
	RowsPerBand int   // Rows rendered per task
	Seed        int64 // Base seed; band i uses Seed+i
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers:  0,
		RowsPerBand: 8,
		Seed:        42,
	}
}

// Raytracer renders a scene through a camera into a PixelBuffer
type Raytracer struct {
	world        core.Shape
	camera       *Camera
	config       ImageConfig
	renderConfig RenderConfig
	logger       core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(world core.Shape, camera *Camera, config ImageConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Raytracer{
		world:        world,
		camera:       camera,
		config:       config,
		renderConfig: DefaultRenderConfig(),
		logger:       logger,
	}
}

// SetRenderConfig updates the scheduling configuration
func (rt *Raytracer) SetRenderConfig(config RenderConfig) {
	rt.renderConfig = config
}

// Render renders every pixel in parallel row bands and returns the buffer with statistics
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats) {
	buffer, stats, _ := rt.RenderContext(context.Background())
	return buffer, stats
}

// RenderContext is Render with cancellation. Bands that have not started when ctx is
// done are skipped; the partially filled buffer is returned together with ctx.Err().
func (rt *Raytracer) RenderContext(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	startTime := time.Now()

	buffer := NewPixelBuffer(rt.config.Width, rt.config.Height)
	bands := NewRowBands(rt.config.Width, rt.config.Height, rt.renderConfig.RowsPerBand, rt.renderConfig.Seed)

	pool := NewWorkerPool(rt.world, rt.camera, rt.config, rt.renderConfig.NumWorkers, len(bands))
	stats := RenderStats{Workers: pool.GetNumWorkers()}

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, depth %d (%d bands, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		len(bands), pool.GetNumWorkers())

	pool.Start()
	for i, band := range bands {
		pool.SubmitTask(BandTask{Ctx: ctx, Band: band, TaskID: i, Buffer: buffer})
	}

	// Results are folded here only, so logging needs no synchronization
	skipped := 0
	for i := 0; i < len(bands); i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Skipped {
			skipped++
			continue
		}
		stats.merge(result.Stats)

		if remaining := len(bands) - i - 1; remaining%10 == 0 {
			rt.logger.Printf("Bands remaining: %d\n", remaining)
		}
	}
	pool.Stop()

	stats.finalize()
	stats.Duration = time.Since(startTime)

	if skipped > 0 {
		rt.logger.Printf("Render cancelled after %v (%d of %d bands skipped)\n", stats.Duration, skipped, len(bands))
		return buffer, stats, ctx.Err()
	}

	rt.logger.Printf("Render completed in %v (%d workers, %d bands, %.1f samples/pixel)\n",
		stats.Duration, stats.Workers, stats.Bands, stats.AverageSamples)
	return buffer, stats, nil
}

// Render renders world through camera with default scheduling
func Render(world core.Shape, camera *Camera, config ImageConfig) *PixelBuffer {
	buffer, _ := NewRaytracer(world, camera, config, nil).Render()
	return buffer
}

// RenderBand renders the rows inside bounds into buffer using the given sampler.
// Only the band's own rows of buffer are written.
func RenderBand(world core.Shape, camera *Camera, config ImageConfig, bounds image.Rectangle, buffer *PixelBuffer, sampler core.Sampler) RenderStats {
	samples := max(1, config.SamplesPerPixel)
	rows := buffer.Rows(bounds.Min.Y, bounds.Max.Y)
	stride := buffer.Stride()

	// Guard one-pixel-wide or one-pixel-high images against division by zero
	sScale := float64(max(1, config.Width-1))
	tScale := float64(max(1, config.Height-1))

	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Row 0 is the top of the image, i.e. the highest t
		j := config.Height - 1 - y
		row := rows[(y-bounds.Min.Y)*stride:]

		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var ps PixelStats
			for sample := 0; sample < samples; sample++ {
				s := (float64(x) + sampler.Get1D()) / sScale
				t := (float64(j) + sampler.Get1D()) / tScale

				ray := camera.GetRay(s, t, sampler)
				ps.AddSample(RayColor(ray, world, config.MaxDepth, sampler))
			}

			r, g, b := ps.RGB8()
			row[3*x], row[3*x+1], row[3*x+2] = r, g, b
			stats.TotalSamples += ps.SampleCount
		}
	}

	return stats
}

// RayColor returns the radiance carried back along r, following at most depth bounces
func RayColor(r core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(r, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(RayColor(scatter.Scattered, world, depth-1, sampler))
}

// BackgroundGradient returns the sky color seen along the ray direction
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return backgroundBottom.Multiply(1.0 - t).Add(backgroundTop.Multiply(t))
}
