// Package server wires config, storage, the session manager, the
// WebSocket hub and the HTTP routes into a runnable service.
package server
