package eoncluster

import (
	"runtime"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// Ordering selects how clusters of a row are laid out in the reordered
// index list. Both keep every cluster contiguous; they differ only in the
// order of clusters.
type Ordering int

const (
	// ReferenceOrder puts multi-member clusters first, in reverse order of
	// first appearance, then singletons in order of first appearance.
	ReferenceOrder Ordering = iota
	// FirstSeenOrder lays clusters out in order of first appearance.
	FirstSeenOrder
)

func (o Ordering) String() string {
	switch o {
	case ReferenceOrder:
		return "reference"
	case FirstSeenOrder:
		return "first-seen"
	default:
		return "unknown"
	}
}

type Config struct {
	// Workers bounds the goroutines used for rows and for cluster chunks.
	Workers int

	Ordering Ordering

	// OnRowDone is called once per assembled row. With Workers > 1 it is
	// called from several goroutines.
	OnRowDone func(row int)

	// Verify re-checks the assembled layout before it is returned.
	Verify bool

	// Accelerator is ACCELERATOR_NONE or ACCELERATOR_ICICLE. It is only read
	// by the curve packages when routing to the device.
	Accelerator string

	// Logger overrides gnark's global logger.
	Logger *zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		Ordering:    ReferenceOrder,
		Accelerator: ACCELERATOR_NONE,
	}
}

func (me *Config) validate() error {
	if me.Workers < 1 {
		return configuration("workers must be at least 1, got %d", me.Workers)
	}
	switch me.Ordering {
	case ReferenceOrder, FirstSeenOrder:
	default:
		return configuration("unknown ordering %d", int(me.Ordering))
	}
	switch me.Accelerator {
	case ACCELERATOR_NONE, ACCELERATOR_ICICLE:
	default:
		return configuration("unknown accelerator %q", me.Accelerator)
	}
	return nil
}

// Log returns a child of cfg.Logger, or of gnark's global logger, tagged
// with component.
func (me *Config) Log(component string) zerolog.Logger {
	if me.Logger != nil {
		return me.Logger.With().Str("component", component).Logger()
	}
	return logger.Logger().With().Str("component", component).Logger()
}
