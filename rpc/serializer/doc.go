// Package serializer converts the common.Message envelope to and from the
// text encoded payloads sent through master.
//
// Only json is offered. Payloads on the master channels are text encoded and
// the two byte "{}" is reserved as the heartbeat. A serialized Message always
// carries msg_type and gen_time, so it is never mistaken for a heartbeat.
package serializer
