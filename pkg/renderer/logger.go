package renderer

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards everything
type NopLogger struct{}

func (nl *NopLogger) Printf(format string, args ...interface{}) {}

// NewNopLogger creates a logger that discards output
func NewNopLogger() core.Logger {
	return &NopLogger{}
}
