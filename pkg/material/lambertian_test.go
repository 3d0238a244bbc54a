package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

func TestLambertian_AttenuationIsAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	// Attenuation must not depend on where the ray came from
	incoming := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 0, -1),
		core.NewVec3(-3, 2, -0.1),
	}

	for _, dir := range incoming {
		ray := core.NewRay(core.NewVec3(0, 0, 1), dir)
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
		// Attenuation should never exceed original albedo values
		if scatter.Attenuation.X > albedo.X ||
			scatter.Attenuation.Y > albedo.Y ||
			scatter.Attenuation.Z > albedo.Z {
			t.Errorf("Attenuation %v exceeds albedo %v (energy violation)", scatter.Attenuation, albedo)
		}
	}
}

func TestLambertian_ScatterStaysInHemisphere(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))

	normal := core.NewVec3(0, 1, 0)
	hit := core.HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal, FrontFace: true}
	ray := core.NewRayAtTime(core.NewVec3(1, 3, 3), core.NewVec3(0, -1, 0), 0.3)

	for i := 0; i < 1000; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
		if scatter.Scattered.Time != ray.Time {
			t.Fatalf("Scattered ray should keep time %f, got %f", ray.Time, scatter.Scattered.Time)
		}
	}
}

// fixedSampler returns canned values so degenerate cases can be forced
type fixedSampler struct {
	values []float64
	i      int
}

func (f *fixedSampler) next() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func (f *fixedSampler) Get1D() float64 { return f.next() }
func (f *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.next(), f.next())
}
func (f *fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.next(), f.next(), f.next())
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// Sample (0.5, 0, 0.5) maps to the point (0, -1, 0) of the [-1,1]³ cube,
	// which is rejected, then (0.5, 1e-12, 0.5) lands just inside the
	// sphere and normalizes to exactly -normal.
	sampler := &fixedSampler{values: []float64{0.5, 0.0, 0.5, 0.5, 1e-12, 0.5}}
	normal := core.NewVec3(0, 1, 0)
	hit := core.HitRecord{Normal: normal, FrontFace: true}

	scatter, didScatter := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to the normal, got %v", scatter.Scattered.Direction)
	}
}
