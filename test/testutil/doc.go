// Package testutil provides shared assertions and fixtures for partitioning tests.
//
// Examples of utilities that belong here:
//   - Partition invariants (ownership, completeness)
//   - Generated graph checks (canonical, distinct, no self-loops)
//   - Readers for the per-worker files a run leaves on disk
//
// Note: For NATS server setup, use the github.com/arloliu/edgepart/testing package.
package testutil
