package main

import (
	"errors"
	"fmt"
	"runtime"
)

// MaxWorkers caps the number of files built concurrently.
const MaxWorkers = 32

// ErrInvalidWorkerCount is returned for a worker count outside 0..MaxWorkers.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// resolvePoolSize determines the optimal pool size.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2

	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
