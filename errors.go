package eoncluster

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned before any work starts when the inputs
	// cannot describe a digit matrix: numRows not dividing the flat length,
	// an out of range row, a point set of the wrong size, or a bad Config.
	ErrConfiguration = errors.New("eoncluster: invalid configuration")

	// ErrInvariant reports a layout that the assembler should never have
	// produced. It always comes wrapped in an *InvariantError.
	ErrInvariant = errors.New("eoncluster: internal invariant violated")
)

// InvariantError pins an ErrInvariant to the offending cluster ordinal.
// Cluster is -1 when the defect is not tied to a single cluster.
type InvariantError struct {
	Cluster int
	Reason  string
}

func (e *InvariantError) Error() string {
	if e.Cluster < 0 {
		return fmt.Sprintf("%v: %s", ErrInvariant, e.Reason)
	}
	return fmt.Sprintf("%v: cluster %d: %s", ErrInvariant, e.Cluster, e.Reason)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

func invariant(cluster int, format string, args ...any) error {
	return &InvariantError{Cluster: cluster, Reason: fmt.Sprintf(format, args...)}
}

func configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
