// Package edgepart shards graph edge lists across a fixed set of workers.
//
// Every vertex is owned by exactly one worker, and every ordered edge (u,v)
// is written to the file of the worker that owns u. A run either generates a
// random simple undirected graph or loads an existing edge list, resolves
// the vertex assignment, and writes one edge-list file per worker.
//
// # Quick Start
//
// Partition an existing edge list across four workers:
//
//	import "github.com/arloliu/edgepart"
//
//	cfg := edgepart.DefaultConfig()
//	cfg.OutputDir = "out"
//
//	runner, err := edgepart.NewRunner(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := runner.Repartition(ctx, edgepart.RepartitionRequest{
//	    InputPath:   "graph.txt",
//	    WorkerCount: 4,
//	})
//
// This writes out/1.txt .. out/4.txt, where file k holds the edges owned
// by worker k-1.
//
// # Vertex Assignment
//
// Vertex v is owned by worker v % workerCount. For generated graphs, the
// job document may pin individual vertices:
//
//	worker_config:
//	  num_workers: 3
//	  vertex_assignment:
//	    "4": worker-0
//
// Overrides with a malformed label or an out-of-range index are ignored and
// the modulo rule applies. After a run, the resolved assignment can be
// written back into the document; unrelated keys and comments are kept.
//
// # Generated Graphs
//
// Generate draws edgeCount distinct undirected pairs without self-loops and
// writes each pair in both directions. A request larger than the simple
// graph capacity n(n-1)/2 fails with ErrCapacityExceeded before anything is
// written. Pass a seed for reproducible output:
//
//	seed := uint64(42)
//	res, err := runner.Generate(ctx, edgepart.GenerateRequest{
//	    ConfigPath:  "job.yaml",
//	    VertexCount: 1000,
//	    EdgeCount:   5000,
//	    Seed:        &seed,
//	})
//
// # Manifests
//
// With WithManifestKV, one WorkerManifest per worker is published to a NATS
// JetStream KV bucket after the files are written, so that workers can find
// and verify their shard:
//
//	js, _ := jetstream.New(nc)
//	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{Bucket: cfg.KV.Bucket})
//	runner, err := edgepart.NewRunner(&cfg, edgepart.WithManifestKV(kv))
//
// See the cmd/edgepart command for a CLI front end.
package edgepart
