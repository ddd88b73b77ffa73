// Package example contains demo provider variants and presenters used by
// the CLI and the library's tests: a Counter, a Toggle with a default
// render, and a reducer-style Items list.
package example
