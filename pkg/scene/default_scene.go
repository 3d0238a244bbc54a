package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates a material showcase: diffuse, hollow glass and metal spheres on a diffuse ground
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0, // Strong depth of field blur
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	s := newScene("default", defaultCameraConfig, renderer.DefaultImageConfig(), cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter),
		// Hollow glass: the negative radius turns the inner wall's normal inward
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialGold),
	)

	return s
}

// NewSingleSphereScene creates a single diffuse sphere lit only by the sky
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	lookFrom := core.NewVec3(5, 0, 2)
	lookAt := core.NewVec3(0, 0, -1)

	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	s := newScene("single-sphere", defaultCameraConfig, renderer.DefaultImageConfig(), cameraOverrides)
	s.Add(geometry.NewSphere(lookAt, 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))))

	return s
}
