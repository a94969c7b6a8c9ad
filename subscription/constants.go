package subscription

import "time"

// Default configuration values for ManifestWatcher.
const (
	// DefaultKeyPrefix matches the prefix runs publish under by default.
	DefaultKeyPrefix = "manifest"

	// DefaultMaxRetries is the number of consecutive failed KV operations
	// tolerated before giving up.
	DefaultMaxRetries = 5

	// DefaultRetryBase is the first retry delay.
	DefaultRetryBase = 100 * time.Millisecond

	// DefaultRetryCap bounds the retry delay.
	DefaultRetryCap = 5 * time.Second

	// retryMultiplier is the growth factor between retry delays.
	retryMultiplier = 2.0
)
