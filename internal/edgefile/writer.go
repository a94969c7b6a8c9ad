package edgefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/xxh3"

	"github.com/arloliu/edgepart/types"
)

// FileMode is the permission of written edge files.
const FileMode os.FileMode = 0o644

// Write writes edges to path, one "<u> <v>\n" line per edge in slice order.
//
// The content goes to a temporary file in the same directory which is renamed
// over path once complete, so path is either left untouched or fully
// replaced. A path ending in ".zst" is written zstd-compressed.
//
// Parameters:
//   - path: Target file; created or truncated
//   - edges: Ordered edges to write
//
// Returns:
//   - types.FileStat: Edge counts, uncompressed size and xxh3 digest (Worker is -1)
//   - error: Wrapping types.ErrIO on any filesystem failure
func Write(path string, edges []types.Edge) (types.FileStat, error) {
	stat := types.FileStat{Worker: -1, Path: path}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return stat, fmt.Errorf("%w: create %s: %w", types.ErrIO, path, err)
	}
	tmpName := tmp.Name()
	closed, renamed := false, false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	var (
		sink io.Writer = tmp
		enc  *zstd.Encoder
	)
	if IsCompressed(path) {
		enc, err = zstd.NewWriter(tmp)
		if err != nil {
			return stat, fmt.Errorf("%w: zstd encoder for %s: %w", types.ErrIO, path, err)
		}
		sink = enc
	}

	hasher := xxh3.New()
	bw := bufio.NewWriterSize(io.MultiWriter(sink, hasher), 64*1024)
	unique := make(map[types.Edge]struct{}, len(edges))

	line := make([]byte, 0, 48)
	for _, e := range edges {
		line = appendLine(line[:0], e)
		n, err := bw.Write(line)
		stat.Bytes += int64(n)
		if err != nil {
			return stat, fmt.Errorf("%w: write %s: %w", types.ErrIO, path, err)
		}
		unique[e] = struct{}{}
	}

	if err := bw.Flush(); err != nil {
		return stat, fmt.Errorf("%w: flush %s: %w", types.ErrIO, path, err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return stat, fmt.Errorf("%w: finish zstd stream %s: %w", types.ErrIO, path, err)
		}
	}
	if err := tmp.Chmod(FileMode); err != nil {
		return stat, fmt.Errorf("%w: chmod %s: %w", types.ErrIO, path, err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return stat, fmt.Errorf("%w: close %s: %w", types.ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return stat, fmt.Errorf("%w: rename into %s: %w", types.ErrIO, path, err)
	}
	renamed = true

	stat.Edges = len(edges)
	stat.UniqueEdges = len(unique)
	stat.Digest = hasher.Sum64()

	return stat, nil
}

// Digest returns the xxh3 digest Write would report for edges.
func Digest(edges []types.Edge) uint64 {
	hasher := xxh3.New()
	line := make([]byte, 0, 48)
	for _, e := range edges {
		line = appendLine(line[:0], e)
		_, _ = hasher.Write(line)
	}

	return hasher.Sum64()
}

func appendLine(buf []byte, e types.Edge) []byte {
	buf = strconv.AppendInt(buf, int64(e.From), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(e.To), 10)

	return append(buf, '\n')
}
