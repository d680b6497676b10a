// Package types defines the shared data model for the StrataCache engine:
// statistics snapshots, lookup results, lifecycle events, health reports,
// and the uniform Cache interface every consumer depends on.
//
// The package carries no behavior beyond the type definitions so that
// consumers can depend on it without pulling in the engine internals.
package types
