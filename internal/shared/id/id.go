// Package id provides centralized ID generation for the backend.
//
// Sessions and bridge commands carry UUIDv4 identifiers. Typed wrappers
// keep the two from being mixed up in signatures.
package id

import "github.com/google/uuid"

// SessionID identifies a collapsed session.
type SessionID string

// CommandID correlates a bridge command with its acknowledgement.
type CommandID string

// NewSessionID generates a new session ID.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// NewCommandID generates a new bridge command ID.
func NewCommandID() CommandID {
	return CommandID(uuid.NewString())
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
