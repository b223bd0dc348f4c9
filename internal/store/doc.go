// Package store is the optional SQLite build history ledger.
//
// Every build run with history enabled appends one row to the builds table,
// successful or not. Rows carry the descriptor fingerprint so repeated
// builds of the same configuration can be grouped and compared.
//
// # Ordering
//
//   - seq INTEGER is a logical clock assigned on insert
//   - Queries order by seq, never by created_at
//
// # Database Configuration
//
//   - WAL mode: history reads while a build writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - PRAGMA user_version tracks the schema version
package store
