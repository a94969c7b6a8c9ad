package edgepart

import "github.com/arloliu/edgepart/types"

// Sentinel errors returned by the Runner.
//
// They are the types package sentinels, re-exported so callers can check
// errors.Is(err, edgepart.ErrCapacityExceeded) without importing types.
var (
	// ErrInvalidConfig is returned for a non-positive worker count, negative
	// sizes or an invalid Config.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrCapacityExceeded is returned when more edges are requested than a
	// simple graph on the vertex count can hold.
	ErrCapacityExceeded = types.ErrCapacityExceeded

	// ErrInputNotFound is returned when the input edge list or job document does not exist.
	ErrInputNotFound = types.ErrInputNotFound

	// ErrIO is returned for filesystem failures while reading or writing.
	ErrIO = types.ErrIO

	// ErrPublishFailed is returned when manifests cannot be published to KV.
	ErrPublishFailed = types.ErrPublishFailed
)
