package subscription

import "errors"

// ErrManifestNotFound indicates no manifest has been published for the worker.
var ErrManifestNotFound = errors.New("worker manifest not found")

// ErrManifestMismatch indicates the edge file on disk differs from its manifest.
var ErrManifestMismatch = errors.New("edge file does not match manifest")

// ErrHandlerFailed wraps an error returned by a ManifestHandler.
var ErrHandlerFailed = errors.New("manifest handler failed")
