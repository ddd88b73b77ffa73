// Package middleware provides observability middleware for host event
// dispatch: Prometheus metrics and OpenTelemetry tracing.
package middleware
