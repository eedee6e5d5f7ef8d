// Package http implements the REST handlers for tab organization and
// session management.
package http
