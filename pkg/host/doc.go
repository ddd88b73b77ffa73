// Package host runs mounted components in a serialized event loop and
// serves them over HTTP.
//
// A Session owns one mounted provider instance. Client events, the state
// mutations their handlers request, and the re-renders those mutations
// schedule all run on the session's single goroutine, so no two mutations
// on the same instance are ever concurrent. Mutation requests are
// coalesced: the host guarantees eventual reflection in a later render
// frame, not a synchronous re-render per request.
//
// Handler wires sessions to the outside: a chi router serving the
// rendered page, a gorilla/websocket endpoint streaming re-render frames,
// and a Prometheus /metrics endpoint.
package host
