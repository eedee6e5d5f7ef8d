// Package main is the entry point for the tab hoarder backend service.
//
// The service exposes an HTTP API for tab organization and session
// archival, plus a WebSocket bridge that a browser extension connects
// to so the server can query and mutate the live tab window.
package main
