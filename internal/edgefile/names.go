package edgefile

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ZstdExt marks a zstd-compressed edge file.
const ZstdExt = ".zst"

// WorkerFileName returns the file name for a zero-based worker index.
//
// Worker 0 is written to "1.txt", worker 1 to "2.txt", and so on. A non-empty
// compression of "zstd" appends ".zst".
func WorkerFileName(worker int, compression string) string {
	name := strconv.Itoa(worker+1) + ".txt"
	if compression == "zstd" {
		name += ZstdExt
	}

	return name
}

// WorkerFilePath joins dir and WorkerFileName.
func WorkerFilePath(dir string, worker int, compression string) string {
	return filepath.Join(dir, WorkerFileName(worker, compression))
}

// IsCompressed reports whether path names a zstd-compressed edge file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ZstdExt)
}
