package strategy

import (
	"fmt"

	"github.com/arloliu/edgepart/types"
)

// ErrNoWorkers indicates that a non-positive worker count was requested.
var ErrNoWorkers = fmt.Errorf("%w: no workers available for assignment", types.ErrInvalidConfig)

// Reasons reported when an override is ignored.
const (
	ReasonMalformedLabel   = "malformed_label"
	ReasonWorkerOutOfRange = "worker_out_of_range"
	ReasonVertexOutOfRange = "vertex_out_of_range"
	ReasonMalformedVertex  = "malformed_vertex"
)
