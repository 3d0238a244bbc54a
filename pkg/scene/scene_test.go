package scene

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

func TestBuiltInScenes(t *testing.T) {
	for _, id := range SceneIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := NewScene(id)
			if err != nil {
				t.Fatalf("NewScene(%q) failed: %v", id, err)
			}
			if s.Name != id {
				t.Errorf("Expected scene name %q, got %q", id, s.Name)
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should contain shapes")
			}
			if err := s.ImageConfig.Validate(); err != nil {
				t.Errorf("Invalid image config: %v", err)
			}
			camera, err := s.Camera()
			if err != nil {
				t.Fatalf("Camera() failed: %v", err)
			}
			if camera.Origin() != s.CameraConfig.LookFrom {
				t.Errorf("Camera origin %v, want %v", camera.Origin(), s.CameraConfig.LookFrom)
			}

			// A ray through the image center should hit something in every scene
			ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(42))
			if _, hit := s.World.Hit(ray, 0.001, math.Inf(1)); !hit {
				t.Error("Expected center ray to hit the scene")
			}
		})
	}
}

func TestNewScene_Unknown(t *testing.T) {
	if _, err := NewScene("cornell-box"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestDefaultScene_HollowGlass(t *testing.T) {
	s := NewDefaultScene()
	if s.GetPrimitiveCount() != 5 {
		t.Fatalf("Expected 5 spheres, got %d", s.GetPrimitiveCount())
	}

	var outer, inner bool
	for _, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok || sphere.Center != core.NewVec3(-1, 0, -1) {
			continue
		}
		switch sphere.Radius {
		case 0.5:
			outer = true
		case -0.45:
			inner = true
		}
	}
	if !outer || !inner {
		t.Errorf("Expected outer and inner glass shells, got outer=%v inner=%v", outer, inner)
	}
}

func TestMovingSpheresScene_Seeded(t *testing.T) {
	a := NewMovingSpheresScene(7)
	b := NewMovingSpheresScene(7)
	c := NewMovingSpheresScene(8)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same seed produced %d and %d shapes", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	for i := range a.World.Shapes {
		sa := a.World.Shapes[i].(*geometry.Sphere)
		sb := b.World.Shapes[i].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.CenterEnd != sb.CenterEnd {
			t.Fatalf("Sphere %d differs between runs with the same seed", i)
		}
	}

	same := a.GetPrimitiveCount() == c.GetPrimitiveCount()
	if same {
		for i := range a.World.Shapes {
			if a.World.Shapes[i].(*geometry.Sphere).Center != c.World.Shapes[i].(*geometry.Sphere).Center {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("Different seeds produced identical layouts")
	}

	var moving int
	for _, shape := range a.World.Shapes {
		sphere := shape.(*geometry.Sphere)
		if sphere.Moving {
			moving++
			if sphere.CenterEnd.Y < sphere.Center.Y {
				t.Errorf("Moving sphere should travel upward, got %v -> %v", sphere.Center, sphere.CenterEnd)
			}
		}
	}
	if moving == 0 {
		t.Error("Expected some moving spheres")
	}
}

func TestScene_CameraOverrides(t *testing.T) {
	s := NewSingleSphereScene(renderer.CameraConfig{VFov: 45, Aperture: 0.1})
	if s.CameraConfig.VFov != 45 {
		t.Errorf("Expected VFov override 45, got %f", s.CameraConfig.VFov)
	}
	if s.CameraConfig.Aperture != 0.1 {
		t.Errorf("Expected aperture override 0.1, got %f", s.CameraConfig.Aperture)
	}
	if s.CameraConfig.LookFrom != core.NewVec3(5, 0, 2) {
		t.Errorf("LookFrom should keep the scene default, got %v", s.CameraConfig.LookFrom)
	}
}

func TestScene_SetImageWidth(t *testing.T) {
	s := NewDefaultScene()
	s.SetImageWidth(160)
	if s.ImageConfig.Width != 160 || s.ImageConfig.Height != 90 {
		t.Errorf("Expected 160x90, got %dx%d", s.ImageConfig.Width, s.ImageConfig.Height)
	}
	if s.ImageConfig.SamplesPerPixel != 100 || s.ImageConfig.MaxDepth != 50 {
		t.Errorf("Sampling settings changed: %+v", s.ImageConfig)
	}
}

func TestOklchToRGB(t *testing.T) {
	white := oklchToRGB(1, 0, 0)
	if math.Abs(white.X-1) > 1e-6 || math.Abs(white.Y-1) > 1e-6 || math.Abs(white.Z-1) > 1e-6 {
		t.Errorf("Expected white, got %v", white)
	}

	for h := 0.0; h < 360; h += 30 {
		c := oklchToRGB(0.65, 0.25, h)
		for _, v := range []float64{c.X, c.Y, c.Z} {
			if v < 0 || v > 1 {
				t.Fatalf("Component out of range for hue %f: %v", h, c)
			}
		}
	}
}
