// Package bridge defines the capability interfaces the backend uses to
// observe and mutate the live browser window.
//
// TabSource reads the current tabs; TabSink applies mutations (move,
// close, create). The production implementation lives in the ws package,
// backed by a connected extension. Loopback is an in-memory window used
// by tests and by anything that needs tab semantics without a browser.
package bridge
