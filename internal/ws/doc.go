// Package ws is the WebSocket bridge to the browser extension. The
// extension connects once per window, answers list_tabs/move/close/
// create commands, and receives progress frames during long batched
// operations. The hub implements the bridge capability interfaces so
// the rest of the backend never sees a socket.
package ws
