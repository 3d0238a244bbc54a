package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string // Scene name (e.g., "default")
	Width     int    // Image width; height follows the scene's aspect ratio
	Samples   int    // Samples per pixel
	MaxDepth  int    // Maximum bounces
	Seed      int64
	Thumbnail bool // Return a thumbnail instead of the full image
}

// parseRenderRequest parses request parameters, defaulting to the scene's recommended settings
func parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := scene.NewScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.ImageConfig

	if req.Width, err = parseIntParam(query, "width", defaults.Width, minWidth, maxWidth); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, minSamples, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", defaults.MaxDepth, minDepth, maxDepth); err != nil {
		return nil, nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", renderer.DefaultRenderConfig().Seed); err != nil {
		return nil, nil, err
	}
	if req.Thumbnail, err = parseBoolParam(query, "thumb"); err != nil {
		return nil, nil, err
	}

	sceneObj.SetImageWidth(req.Width)
	sceneObj.ImageConfig.SamplesPerPixel = req.Samples
	sceneObj.ImageConfig.MaxDepth = req.MaxDepth

	config := sceneObj.ImageConfig
	if total := config.Width * config.Height * config.SamplesPerPixel; total > maxSamplesPerRender {
		return nil, nil, fmt.Errorf("%dx%d at %d samples is %d samples, limit is %d",
			config.Width, config.Height, config.SamplesPerPixel, total, maxSamplesPerRender)
	}

	// Performance warning
	if req.Width*config.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, sceneObj, err := parseRenderRequest(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	camera, err := sceneObj.Camera()
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid scene: %v", err), http.StatusInternalServerError)
		return
	}

	// Use request context to detect client disconnection
	ctx := r.Context()

	select {
	case s.renderSlots <- struct{}{}:
		defer func() { <-s.renderSlots }()
	case <-ctx.Done():
		http.Error(w, "request cancelled while waiting for a render slot", http.StatusServiceUnavailable)
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renderIDs.Add(1))
	raytracer := renderer.NewRaytracer(sceneObj.World, camera, sceneObj.ImageConfig, NewWebLogger(renderID, log.Default()))

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.Seed = req.Seed
	raytracer.SetRenderConfig(renderConfig)

	buffer, stats, err := raytracer.RenderContext(ctx)
	if err != nil {
		http.Error(w, fmt.Sprintf("Render cancelled: %v", err), http.StatusServiceUnavailable)
		return
	}
	img := buffer.ToRGBA()

	var data []byte
	if req.Thumbnail {
		data, err = output.EncodePNG(output.Thumbnail(img, output.DefaultThumbnailSize))
	} else {
		data, err = output.EncodePNG(img)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[%s] Failed to write response: %v", renderID, err)
	}
}
