package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType string
	Width     int // 0 keeps the scene's recommended width
	Samples   int // 0 keeps the scene's recommended samples per pixel
	MaxDepth  int // 0 keeps the scene's recommended depth
	Seed      int64
	Workers   int
	OutputDir string
	Thumbnail bool
	Upload    bool
	EnvFile   string
	List      bool
	Help      bool
}

func parseFlags(args []string, errOut io.Writer) (Config, *flag.FlagSet, error) {
	var config Config
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&config.SceneType, "scene", "default", "Scene to render (see -list)")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum bounces per path (0 = scene default)")
	fs.Int64Var(&config.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Random seed; the same seed gives the same image")
	fs.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.StringVar(&config.OutputDir, "out", "output", "Output directory")
	fs.BoolVar(&config.Thumbnail, "thumb", false, "Also write a thumbnail next to the render")
	fs.BoolVar(&config.Upload, "upload", false, "Upload the render to S3 (settings from environment)")
	fs.StringVar(&config.EnvFile, "env", "", "Optional .env file with S3 settings")
	fs.BoolVar(&config.List, "list", false, "List available scenes")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	err := fs.Parse(args)
	return config, fs, err
}

func main() {
	config, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if config.Help {
		showHelp(fs)
		return
	}
	if config.List {
		listScenes(os.Stdout)
		return
	}

	fmt.Println("Starting Sphere Raytracer...")
	files, err := run(context.Background(), config, renderer.NewDefaultLogger())
	for _, file := range files {
		fmt.Printf("Render saved as %s\n", file)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	listScenes(os.Stdout)
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.png")
}

func listScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-15s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name is empty")
	}
	return scene.NewScene(sceneType)
}

// applyOverrides replaces the scene's recommended settings with non-zero flag values
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.SetImageWidth(config.Width)
	}
	if config.Samples > 0 {
		s.ImageConfig.SamplesPerPixel = config.Samples
	}
	if config.MaxDepth > 0 {
		s.ImageConfig.MaxDepth = config.MaxDepth
	}
}

// buildSinks returns the sinks for this run. An S3 setup failure is returned
// alongside the local sink so the render is still saved.
func buildSinks(config Config, sceneDir string) ([]output.Sink, *output.FileSink, error) {
	fileSink := output.NewFileSink(sceneDir)
	sinks := []output.Sink{fileSink}

	if !config.Upload {
		return sinks, fileSink, nil
	}

	s3Config, err := output.LoadS3Config(config.EnvFile)
	if err != nil {
		return sinks, fileSink, fmt.Errorf("S3 upload disabled: %w", err)
	}
	s3Sink, err := output.NewS3Sink(s3Config)
	if err != nil {
		return sinks, fileSink, fmt.Errorf("S3 upload disabled: %w", err)
	}
	return append(sinks, s3Sink), fileSink, nil
}

// run renders the configured scene and writes it to every sink.
// It returns the local files written, even when some sinks failed.
func run(ctx context.Context, config Config, logger core.Logger) ([]string, error) {
	selectedScene, err := createScene(config.SceneType)
	if err != nil {
		return nil, err
	}
	applyOverrides(selectedScene, config)

	if err := selectedScene.ImageConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid image settings: %w", err)
	}
	camera, err := selectedScene.Camera()
	if err != nil {
		return nil, err
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.Workers
	renderConfig.Seed = config.Seed

	imageConfig := selectedScene.ImageConfig
	logger.Printf("Scene %s: %d shapes, %dx%d, %d samples, depth %d, %d CPUs\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), imageConfig.Width, imageConfig.Height,
		imageConfig.SamplesPerPixel, imageConfig.MaxDepth, runtime.NumCPU())

	raytracer := renderer.NewRaytracer(selectedScene.World, camera, imageConfig, logger)
	raytracer.SetRenderConfig(renderConfig)

	buffer, _, err := raytracer.RenderContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("render of %s interrupted: %w", selectedScene.Name, err)
	}
	img := buffer.ToRGBA()

	// Create output directory for this scene type
	sceneDir := filepath.Join(config.OutputDir, selectedScene.Name)
	sinks, fileSink, setupErr := buildSinks(config, sceneDir)

	name := fmt.Sprintf("render_%s", time.Now().Format("20060102_150405"))
	var files []string

	writeErr := output.WriteAll(ctx, sinks, name, img)
	if _, statErr := os.Stat(fileSink.Path(name)); statErr == nil {
		files = append(files, fileSink.Path(name))
	}

	var thumbErr error
	if config.Thumbnail {
		thumbName := output.ThumbnailName(name)
		thumbErr = output.WriteAll(ctx, sinks, thumbName, output.Thumbnail(img, output.DefaultThumbnailSize))
		if _, statErr := os.Stat(fileSink.Path(thumbName)); statErr == nil {
			files = append(files, fileSink.Path(thumbName))
		}
	}

	return files, errors.Join(setupErr, writeErr, thumbErr)
}
