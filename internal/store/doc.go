// Package store provides SQLite-backed history of generated data-explorer
// links.
//
// Only the resulting links are recorded. Filter Sets are never persisted:
// they are rebuilt from user input for every search.
//
// # Ordering
//
// Rows are ordered by seq (AUTOINCREMENT), never by created_at, so two
// links recorded within the same clock tick keep a stable order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
