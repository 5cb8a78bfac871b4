// Package device implements the io device, the entry point a process uses to
// talk to master and to open channels to other processes.
//
// The package focuses on:
//   - The address scheme mapping a location and protocol to an ipc url
//   - The master notification channel (Publisher and Observer)
//   - The synchronous master service (request/reply)
//   - The two device roles built from these pieces
//
// Key Components:
//
//   - URLFactory: Pure address scheme. BindURL uses the protocol as given,
//     ConnectURL uses its opposite, so a bind of (L, R) and a connect of
//     (L, R.Opposite()) resolve to the same url:
//
//     ipc://<root>/<category>/<group>/<name>.<protocol>
//
//   - Publisher: noopPublisher for master (Publish fails with
//     common.ErrProtocolMisuse), socketPublisher for clients. In low latency
//     mode Notify never sends, otherwise it sends the {} heartbeat.
//
//   - Observer: Subscribes to the master broadcast. Wait returns true only for
//     payloads longer than the heartbeat, timeouts are not errors.
//
//   - MasterService: One request at a time, no timeout, no retry.
//
//   - Device: NewMasterDevice wires only the noop publisher, NewClientDevice
//     connects observer, service and publisher to common.Master. Both open
//     raw sockets with ConnectSocket and BindSocket.
//
// Thread Safety:
//
//	Publisher, Observer and MasterService serialize their own calls. Raw
//	sockets returned by ConnectSocket and BindSocket are not synchronized
//	and must be used from one goroutine at a time.
package device
