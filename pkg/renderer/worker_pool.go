package renderer

import (
	"context"
	"image"
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// RowBand is a horizontal strip of full image rows rendered as one task
type RowBand struct {
	ID     int             // Unique band identifier
	Bounds image.Rectangle // Pixel bounds, always the full image width
	Random *rand.Rand      // Band-specific random generator for deterministic results
}

// NewRowBand creates a band whose generator is derived from the render seed and band ID
func NewRowBand(id int, bounds image.Rectangle, seed int64) *RowBand {
	return &RowBand{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(seed + int64(id))),
	}
}

// NewRowBands splits an image into bands of rowsPerBand rows, the last one possibly shorter
func NewRowBands(width, height, rowsPerBand int, seed int64) []*RowBand {
	if rowsPerBand <= 0 {
		rowsPerBand = 1
	}

	var bands []*RowBand
	for y0, id := 0, 0; y0 < height; y0, id = y0+rowsPerBand, id+1 {
		y1 := min(y0+rowsPerBand, height) // Don't exceed image bounds
		bands = append(bands, NewRowBand(id, image.Rect(0, y0, width, y1), seed))
	}
	return bands
}

// BandTask represents a band rendering task for the worker pool
type BandTask struct {
	Ctx    context.Context // Optional; a done context skips the band
	Band   *RowBand
	TaskID int
	Buffer *PixelBuffer // Shared output; each band writes only its own rows
}

// BandResult contains the result from rendering a band
type BandResult struct {
	TaskID  int
	Stats   RenderStats
	Skipped bool // Band was not rendered because its context was done
}

// WorkerPool manages parallel band rendering
type WorkerPool struct {
	taskQueue   chan BandTask
	resultQueue chan BandResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders bands against a shared, read-only scene and camera
type Worker struct {
	ID          int
	world       core.Shape
	camera      *Camera
	config      ImageConfig
	taskQueue   chan BandTask
	resultQueue chan BandResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting never blocks.
func NewWorkerPool(world core.Shape, camera *Camera, config ImageConfig, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BandTask, maxTasks),
		resultQueue: make(chan BandResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			world:       world,
			camera:      camera,
			config:      config,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued tasks to drain and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a band task to the worker pool
func (wp *WorkerPool) SubmitTask(task BandTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed band result
func (wp *WorkerPool) GetResult() (BandResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if task.Ctx != nil && task.Ctx.Err() != nil {
			w.resultQueue <- BandResult{TaskID: task.TaskID, Skipped: true}
			continue
		}

		// Bands never overlap, so writing into the shared buffer needs no locking
		sampler := core.NewRandomSampler(task.Band.Random)
		stats := RenderBand(w.world, w.camera, w.config, task.Band.Bounds, task.Buffer, sampler)

		w.resultQueue <- BandResult{
			TaskID: task.TaskID,
			Stats:  stats,
		}
	}
}
