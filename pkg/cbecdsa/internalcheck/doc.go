// Package internalcheck holds source-level policy tests for the engine.
//
// The tests load pkg/cbecdsa and its subpackages with go/packages and walk
// their syntax trees. They fail the build when key material could be compared
// in variable time or rendered as hex in an error or log line.
//
// The package has no exported API and is not meant to be imported.
package internalcheck
