// Package tabs holds the pure set operations over an ordered tab
// sequence: domain frequency ranking, sort-by-domain permutations, and
// duplicate-by-URL membership. Inputs are never mutated.
package tabs
