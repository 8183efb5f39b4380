// Package memory provides in-process implementations of the store
// interfaces. Each collection is guarded by its own lock and every record
// handed out is a copy, so callers can never mutate stored state directly.
// Data does not survive a restart.
package memory
