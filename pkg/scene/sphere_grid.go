package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b
	lp, mp, sp = lp*lp*lp, mp*mp*mp, sp*sp*sp

	// LMS to linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lp-3.3077115913*mp+0.2309699292*sp,
		-1.2684380046*lp+2.6097574011*mp-0.3413193965*sp,
		-0.0041960863*lp-0.7034186147*mp+1.7076147010*sp,
	)

	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored metal spheres resting on a large ground sphere.
// Hue varies along x, chroma along z and fuzz cycles through three levels.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(4.5, 6, 18),
		LookAt:        core.NewVec3(4.5, 0.8, 4.5),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.02,
		FocusDistance: 0.0, // Focus on LookAt
	}

	s := newScene("sphere-grid", defaultCameraConfig, renderer.NewImageConfig(400, 16.0/9.0, 100, 40), cameraOverrides)

	const groundRadius = 1000.0
	s.Add(geometry.NewSphere(core.NewVec3(4.5, -groundRadius, 4.5), groundRadius,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	const (
		gridSize      = 10
		targetArea    = 9.0
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius,
				material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)))
		}
	}

	return s
}
