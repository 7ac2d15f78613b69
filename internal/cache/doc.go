// Package cache persists list snapshots and configuration objects between
// runs.
//
// A snapshot is stored under a key derived from the resource kind and the
// ids that own it (see Key). Two backends implement Store:
//
//   - FileStore: one "<key>.json" file per key, written atomically
//   - SQLiteStore: one row per key in a single SQLite database
//
// Lists are encoded as indented JSON arrays; ReadList and WriteList are the
// typed entry points. Every failure is reported as a *CacheIOError so that
// callers can treat the cache as a soft dependency.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package cache
