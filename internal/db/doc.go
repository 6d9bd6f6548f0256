// Package db opens the lab's SQLite store.
//
// The store is a single file driven through database/sql with the pure-Go
// modernc.org/sqlite driver. There is no pool shared between operations:
// WithTx opens a handle, runs one statement or one batch in a transaction,
// commits and closes, which keeps every operation's effects durable before
// the next one starts.
package db
