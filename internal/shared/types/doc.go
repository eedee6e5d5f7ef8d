// Package types provides shared data structures for the tab hoarder backend.
//
// Core Types:
//   - Tab: a live browser tab reported by the extension
//   - Move: a target position for a tab, produced by sort plans
//   - DomainCount: aggregate tab count per apex domain
//   - Session: an archived snapshot of a window's tabs
//   - SavedTab: the persisted form of a tab inside a session
//   - SessionMetadata: session listing without tab payloads
package types
