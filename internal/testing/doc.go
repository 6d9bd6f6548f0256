// Package testing holds helpers shared by package tests: temporary SQLite
// stores and sample CSV sources. Import it as testhelpers to avoid shadowing
// the standard library package.
package testing
