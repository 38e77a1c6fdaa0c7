// Package store provides the SQLite-backed schema build registry.
//
// Every augmentation can be recorded as a build: the content hash of the
// input type definitions, the canonical config it ran with, and the
// printed output. Recording the same schema and config twice returns the
// first build, so a registry doubles as evidence that augmentation is
// deterministic.
//
// # Ordering
//
//   - seq INTEGER is the logical record order, assigned in the insert
//     transaction; created_at is never used for ordering
//   - Queries order by seq, then id COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
