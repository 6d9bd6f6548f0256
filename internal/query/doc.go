// Package query runs arbitrary SQL against the lab store and returns fully
// materialized result sets.
//
// Every call opens its own connection, runs the statement in a transaction,
// reads every row, commits and closes. Arguments are bound positionally to
// ? placeholders and are never spliced into the SQL text.
package query
