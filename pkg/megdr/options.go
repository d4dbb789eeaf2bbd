package megdr

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// GapOptions configures longitude gap detection.
type GapOptions struct {
	// Tolerance is the largest separation in degrees between two intervals
	// that still counts as contiguous. Absorbs rounding in label values.
	Tolerance float64

	// WrapMin and WrapMax bound the wraparound check: a gap across 360°/0°
	// is reported when the last interval ends before WrapMax and the first
	// starts after WrapMin.
	WrapMin float64
	WrapMax float64
}

// DefaultGapOptions returns a 1° tolerance and a 1°..359° wraparound window.
func DefaultGapOptions() GapOptions {
	return GapOptions{
		Tolerance: 1.0,
		WrapMin:   1.0,
		WrapMax:   359.0,
	}
}

// LoadOptions controls label discovery, parallel loading and error handling.
type LoadOptions struct {
	// Recursive walks the whole directory tree. When false only the
	// directory itself and its immediate subdirectories are searched.
	Recursive bool

	// Parallel enables concurrent label parsing.
	Parallel bool

	// Workers specifies the number of parallel loader goroutines.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// SkipErrors causes loading to continue when individual labels fail.
	// When false, the first error stops loading.
	SkipErrors bool

	// Progress is an optional callback called after each label is processed.
	Progress func(loaded, total int)

	// Logger receives per-file warnings and errors. nil uses the logrus
	// standard logger.
	Logger logrus.FieldLogger

	// Cache optionally short-circuits parsing of unchanged labels.
	Cache TileCache
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Recursive:  false,
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

func (o LoadOptions) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
