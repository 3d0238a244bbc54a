package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// WebLogger implements core.Logger by tagging render progress with the render ID
type WebLogger struct {
	renderID string
	logger   *log.Logger
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, logger *log.Logger) core.Logger {
	return &WebLogger{
		renderID: renderID,
		logger:   logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if message == "" {
		return
	}
	wl.logger.Printf("[%s] %s", wl.renderID, message)
}
