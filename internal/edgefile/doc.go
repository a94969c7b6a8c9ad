// Package edgefile reads and writes flat edge-list files.
//
// The format is one ordered edge per line, "<u> <v>\n", no header. On read,
// blank lines and lines starting with '#' are ignored, extra tokens after the
// two vertex ids are ignored, and malformed lines are skipped without error.
// Paths ending in ".zst" are transparently zstd-compressed.
package edgefile
