// Package rpc holds the wire level building blocks of the IO device.
//
// The package is organized into several subpackages:
//
//   - common: Location addressing, the notice message format, device configuration,
//     sentinel errors and logging.
//
//   - transport: The socket abstraction (ISocket, ISocketFactory) and the set of
//     scalability protocols (rep, req, push, pull, pub, sub) with their pairing.
//
//   - transport/ipc: The mangos backed implementation of the socket abstraction
//     over ipc:// endpoints.
//
//   - serializer: Encoding of typed notice messages into the bytes carried by the
//     publisher channel.
package rpc
