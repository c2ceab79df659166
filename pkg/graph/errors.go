package graph

import (
	"errors"
	"fmt"
)

// Domain errors raised by the builders before any graph is assembled.
var (
	ErrBadNodeCount = errors.New("node count must be >= 0")
	ErrBadEndpoint  = errors.New("edge endpoint out of range")
	ErrBadWeight    = errors.New("edge weight must be finite and >= 0")
)

func endpointError(i int, u, v uint32, n uint32) error {
	return fmt.Errorf("edge %d (%d -> %d) with n=%d: %w", i, u, v, n, ErrBadEndpoint)
}

func weightError(i int, w float64) error {
	return fmt.Errorf("edge %d weight %v: %w", i, w, ErrBadWeight)
}
