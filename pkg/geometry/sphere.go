package geometry

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Sphere represents a sphere shape, optionally moving linearly over the shutter interval.
// A negative radius flips the outward normal, which renders the inner wall of a hollow shell.
type Sphere struct {
	Center    core.Vec3 // Center at time 0
	CenterEnd core.Vec3 // Center at time 1 (moving spheres only)
	Radius    float64
	Material  core.Material
	Moving    bool
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:    center,
		CenterEnd: center,
		Radius:    radius,
		Material:  material,
	}
}

// NewMovingSphere creates a sphere that travels from start to end as ray time goes from 0 to 1
func NewMovingSphere(start, end core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:    start,
		CenterEnd: end,
		Radius:    radius,
		Material:  material,
		Moving:    true,
	}
}

// CenterAt returns the sphere center at the given time
func (s *Sphere) CenterAt(time float64) core.Vec3 {
	if !s.Moving {
		return s.Center
	}
	return s.Center.Add(s.CenterEnd.Subtract(s.Center).Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	center := s.CenterAt(ray.Time)

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.LengthSquared()
	if a == 0 {
		// A zero direction never reaches anything
		return nil, false
	}
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal is measured from the center at the ray's time
	outwardNormal := hitRecord.Point.Subtract(center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
