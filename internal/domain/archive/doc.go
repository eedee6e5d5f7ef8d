// Package archive is the session store model: the canonical collection
// of collapsed sessions and its persisted JSON shape. It is pure data
// plumbing, independent of the persistence transport; the session
// manager decides when to read or write the blob.
package archive
