// Package assignment publishes a resolved vertex assignment.
//
// Two targets are supported:
//
//   - Publisher patches the worker_config section of the job configuration
//     document (vertex_assignment and num_workers) and leaves every other key
//     as it was
//   - KVPublisher writes one WorkerManifest per worker to a NATS JetStream
//     KV bucket so that workers can locate their edge file
//
// # Configuration Document
//
// After publishing, the document contains:
//
//	worker_config:
//	  num_workers: 3
//	  vertex_assignment:
//	    0: worker-0
//	    1: worker-1
//	    2: worker-2
//
// A missing document is not an error: PublishFile logs a warning and skips.
//
// # Manifest Distribution
//
// Manifests are published to NATS KV with the following structure:
//
//	Key: "{prefix}.worker-{n}"  (e.g., "manifest.worker-1")
//	Value: JSON-encoded WorkerManifest
//
// Every publish uses a version one greater than the highest version found in
// the bucket, and manifests for workers beyond the current worker count are
// deleted.
package assignment
