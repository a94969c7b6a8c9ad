// Package subscription lets a worker consume the manifest a partitioning run
// published for it.
//
// A run publishes one types.WorkerManifest per worker to a NATS JetStream KV
// bucket under "{prefix}.worker-{n}". ManifestWatcher reads that key once
// (Fetch) or follows it across runs (Watch), and Verify checks that the
// edge file on disk matches the manifest before the worker loads it.
package subscription
