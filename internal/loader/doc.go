// Package loader maps CSV records onto the lab tables and bulk-inserts them.
//
// Each known source is a Dataset value carrying its table, its column order
// and its projection from a header-keyed record to an insert tuple. Loading
// is ignore-on-conflict: a row whose primary key is already present is
// dropped silently, never merged, so loading the same file twice leaves the
// table unchanged.
//
// All tuples of a load are inserted in one transaction. If any insert fails
// the transaction is rolled back and the table is left as it was.
package loader
