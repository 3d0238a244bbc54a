package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.ShapeList // Objects in the scene
	CameraConfig renderer.CameraConfig
	ImageConfig  renderer.ImageConfig // Recommended image and sampling settings
}

// newScene creates an empty scene, applying the first camera override if any
func newScene(name string, cameraConfig renderer.CameraConfig, imageConfig renderer.ImageConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Name:         name,
		World:        geometry.NewShapeList(),
		CameraConfig: cameraConfig,
		ImageConfig:  imageConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.World.Add(shapes...)
}

// SetImageWidth changes the output width, keeping the aspect ratio
func (s *Scene) SetImageWidth(width int) {
	s.ImageConfig = renderer.NewImageConfig(width, s.ImageConfig.AspectRatio,
		s.ImageConfig.SamplesPerPixel, s.ImageConfig.MaxDepth)
}

// Camera builds the camera, matching its aspect ratio to the image
func (s *Scene) Camera() (*renderer.Camera, error) {
	config := s.CameraConfig
	config.AspectRatio = s.ImageConfig.AspectRatio
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return renderer.NewCamera(config), nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
