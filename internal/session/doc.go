// Package session orchestrates collapse and restore of tab sets.
//
// The manager owns the flow: snapshot tabs from the source, archive
// them in the store, persist the blob, then drive move/close/create
// requests through the injected sink one chunk at a time. Partial
// batch failures surface with the count of items already applied;
// applied chunks are never rolled back.
package session
