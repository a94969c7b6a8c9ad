package subscription

import (
	"fmt"

	"github.com/arloliu/edgepart/internal/edgefile"
	"github.com/arloliu/edgepart/types"
)

// Verify checks that the edge file named by m matches it.
//
// The file is read in full (decompressing ".zst" files) and its edge count
// and xxh3 digest are compared against the manifest.
//
// Parameters:
//   - m: Manifest as returned by Fetch or Watch
//
// Returns:
//   - error: ErrManifestMismatch on any difference, or the read error
//     (ErrInputNotFound, ErrIO)
func Verify(m types.WorkerManifest) error {
	edges, err := edgefile.ReadAll(m.File.Path)
	if err != nil {
		return err
	}

	if len(edges) != m.File.Edges {
		return fmt.Errorf("%w: %s has %d edges, manifest version %d says %d",
			ErrManifestMismatch, m.File.Path, len(edges), m.Version, m.File.Edges)
	}
	if digest := edgefile.Digest(edges); digest != m.File.Digest {
		return fmt.Errorf("%w: %s digest %016x, manifest version %d says %016x",
			ErrManifestMismatch, m.File.Path, digest, m.Version, m.File.Digest)
	}

	return nil
}
