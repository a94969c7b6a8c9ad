package types

import (
	"errors"
	"io/fs"
	"strings"
)

// Sentinel errors for the edgepart library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Generator, Loader, Writer, Publisher)
//   - Use consistent messages across similar error types

// Run errors - fatal conditions that abort a run before any output is written.
var (
	// ErrInvalidConfig is returned when the worker count is non-positive or a
	// required setting is absent with no usable default.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCapacityExceeded is returned when the requested edge count exceeds
	// vertexCount*(vertexCount-1)/2.
	ErrCapacityExceeded = errors.New("edge count exceeds simple graph capacity")

	// ErrInputNotFound is returned when a required input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
)

// I/O errors - filesystem failures while reading or writing edge files.
var (
	// ErrIO wraps any underlying filesystem failure. It is not retried.
	ErrIO = errors.New("i/o failure")
)

// Publisher errors.
var (
	// ErrConfigTargetMissing indicates that a configuration document to update
	// does not exist. Publishers log it as a warning and skip publishing.
	ErrConfigTargetMissing = errors.New("configuration target does not exist")

	// ErrPublishFailed is returned when publishing manifests to NATS KV fails.
	ErrPublishFailed = errors.New("failed to publish manifest")

	// ErrNoKeysFound is returned when NATS KV returns no keys (expected condition).
	ErrNoKeysFound = errors.New("no keys found")
)

// IsNotExist reports whether err indicates a missing file or document.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true for ErrInputNotFound, ErrConfigTargetMissing or fs.ErrNotExist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrInputNotFound) ||
		errors.Is(err, ErrConfigTargetMissing) ||
		errors.Is(err, fs.ErrNotExist)
}

// IsNoKeysFoundError checks if an error indicates that no keys were found in NATS KV.
//
// NATS reports the condition as "nats: no keys found", possibly wrapped.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if the error indicates no keys were found, false otherwise
func IsNoKeysFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoKeysFound) {
		return true
	}

	return strings.Contains(err.Error(), "no keys found")
}
