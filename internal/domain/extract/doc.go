// Package extract computes registrable (apex) domains from URLs.
//
// Extraction is a pure string transformation: no network lookups, no
// host environment. A static table of common compound public suffixes
// (co.uk, com.au, ...) decides when the apex keeps three labels.
package extract
