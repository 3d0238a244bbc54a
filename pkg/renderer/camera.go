package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// CameraConfig contains the parameters a Camera is derived from
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // World up direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 = pinhole
	FocusDistance float64   // Distance to the plane in perfect focus, 0 = distance to LookAt
}

// Validate reports configurations that would produce a degenerate camera basis
func (c CameraConfig) Validate() error {
	viewDir := c.LookFrom.Subtract(c.LookAt)
	if viewDir.NearZero() {
		return fmt.Errorf("camera lookfrom and lookat coincide at %v", c.LookFrom)
	}
	if c.Up.Cross(viewDir).NearZero() {
		return fmt.Errorf("camera up vector %v is parallel to the view direction", c.Up)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.Aperture < 0 {
		return fmt.Errorf("aperture must not be negative, got %g", c.Aperture)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("focus distance must not be negative, got %g", c.FocusDistance)
	}
	return nil
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}

	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Aperture != 0 {
		result.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}

	return result
}

// Camera generates rays for rendering. It is immutable once built and safe to share between workers.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal basis: right, up, backward
	lensRadius      float64
}

// NewCamera creates a camera with depth of field from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where 0 <= s,t <= 1.
// The origin is jittered over the lens and the ray is stamped with a random time.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	var offset core.Vec3
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
		offset = c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	return core.NewRayAtTime(c.origin.Add(offset), direction, sampler.Get1D())
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}
