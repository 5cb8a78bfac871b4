// Package ipc implements the transport.ISocket primitive with nanomsg
// compatible sockets over unix domain sockets. Urls have the form
// ipc://<path> and the path is the socket file.
//
// Key Components:
//
//   - socketFactory: Opens mangos sockets for every transport.Protocol
//
//   - socket: Wraps a mangos socket and adds a zero means non-blocking
//     receive timeout, stale socket file cleanup on bind, peer tracking
//     and VictoriaMetrics counters per protocol
//
// Connect is asynchronous. A connecting socket does not need its peer to be
// bound yet, mangos redials in the background until the peer shows up.
package ipc
