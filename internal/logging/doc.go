// Package logging provides concrete implementations of the imdblab.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with serialized output
//   - NullLogger: Discards all messages (useful for testing)
//
// Query results are not log output; they are written to stdout by the lab's
// printer so that they can be piped independently of diagnostics.
package logging
