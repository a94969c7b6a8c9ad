// Package testing provides test utilities for edgepart.
//
// It starts an embedded NATS server with JetStream so that manifest
// publishing can be tested without an external deployment, following Go's
// convention of dedicated testing packages (similar to net/http/httptest).
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: In-memory KV bucket on that server
//
// Example usage:
//
//	import (
//	    "testing"
//	    edgetest "github.com/arloliu/edgepart/testing"
//	)
//
//	func TestPublish(t *testing.T) {
//	    _, nc := edgetest.StartEmbeddedNATS(t)
//	    kv := edgetest.CreateJetStreamKV(t, nc, "manifests")
//	}
package testing
