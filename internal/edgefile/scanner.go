package edgefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/edgepart/internal/logger"
	"github.com/arloliu/edgepart/types"
)

const maxLineBytes = 1 << 20

// Scanner iterates the valid edges of an edge-list stream.
//
// Usage mirrors bufio.Scanner:
//
//	sc, err := edgefile.Open("graph.txt")
//	if err != nil { /* handle */ }
//	defer sc.Close()
//	for sc.Scan() {
//	    e := sc.Edge()
//	}
//	if err := sc.Err(); err != nil { /* handle */ }
type Scanner struct {
	sc      *bufio.Scanner
	closers []io.Closer
	logger  types.Logger

	edge    types.Edge
	line    int
	parsed  int
	skipped int
	err     error
}

// ScanOption configures a Scanner.
type ScanOption func(*Scanner)

// WithLogger sets the logger that receives one debug entry per skipped line.
func WithLogger(l types.Logger) ScanOption {
	return func(s *Scanner) {
		s.logger = l
	}
}

// NewScanner creates a scanner over r. The caller owns r.
func NewScanner(r io.Reader, opts ...ScanOption) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	s := &Scanner{sc: sc, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open opens an edge-list file for scanning, decompressing ".zst" files.
//
// Returns:
//   - *Scanner: Scanner owning the file; call Close when done
//   - error: ErrInputNotFound if the file does not exist, ErrIO otherwise
func Open(path string, opts ...ScanOption) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", types.ErrInputNotFound, err)
		}

		return nil, fmt.Errorf("%w: %w", types.ErrIO, err)
	}

	if !IsCompressed(path) {
		s := NewScanner(f, opts...)
		s.closers = []io.Closer{f}

		return s, nil
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: open zstd stream %s: %w", types.ErrIO, path, err)
	}
	rc := dec.IOReadCloser()
	s := NewScanner(rc, opts...)
	s.closers = []io.Closer{rc, f}

	return s, nil
}

// Scan advances to the next valid edge.
//
// Blank and comment lines are passed over silently. Malformed lines (fewer
// than two tokens, non-integer or negative ids) are counted in Skipped.
func (s *Scanner) Scan() bool {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		e, ok := parseLine(text)
		if !ok {
			s.skipped++
			s.logger.Debug("skipping malformed edge line", "line", s.line, "text", text)

			continue
		}
		s.edge = e
		s.parsed++

		return true
	}

	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("%w: read edge list at line %d: %w", types.ErrIO, s.line+1, err)
	}

	return false
}

func parseLine(text string) (types.Edge, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return types.Edge{}, false
	}

	u, err := strconv.Atoi(fields[0])
	if err != nil || u < 0 {
		return types.Edge{}, false
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil || v < 0 {
		return types.Edge{}, false
	}

	return types.Edge{From: u, To: v}, true
}

// Edge returns the most recent edge produced by Scan.
func (s *Scanner) Edge() types.Edge {
	return s.edge
}

// Line returns the 1-based line number of the most recent edge.
func (s *Scanner) Line() int {
	return s.line
}

// Parsed returns the number of valid edge lines seen so far.
func (s *Scanner) Parsed() int {
	return s.parsed
}

// Skipped returns the number of malformed lines seen so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Err returns the first read error, wrapped with ErrIO.
func (s *Scanner) Err() error {
	return s.err
}

// Close releases the underlying file, if the scanner was created by Open.
func (s *Scanner) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil

	return errors.Join(errs...)
}

// ReadAll returns every valid edge of the file in file order.
func ReadAll(path string, opts ...ScanOption) ([]types.Edge, error) {
	sc, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	var edges []types.Edge
	for sc.Scan() {
		edges = append(edges, sc.Edge())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return edges, nil
}
