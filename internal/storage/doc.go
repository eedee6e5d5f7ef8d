// Package storage provides the persistence layer for session archives.
//
// KV is a small quota-aware key/value abstraction with two
// implementations: FileKV persists values as files with atomic writes,
// and MemoryKV backs tests.
package storage
