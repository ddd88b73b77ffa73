// Package svtest provides test helpers for asserting on rendered
// component output and on re-render scheduling.
package svtest
