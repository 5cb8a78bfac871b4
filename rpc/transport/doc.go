// Package transport defines the raw socket primitive dIO is built on.
//
// A socket speaks one scalability protocol (request/reply, push/pull,
// publish/subscribe). Each protocol has an opposite, the role its peer must
// use. The address scheme relies on this to make the bind side and the
// connect side of a channel resolve to the same endpoint.
//
// Implementations:
//
//   - ipc: nanomsg compatible sockets over unix domain sockets (mangos v3)
package transport
