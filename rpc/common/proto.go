package common

import (
	"encoding/json"
	"time"
)

// --------------------------------------------------------------------------
// Heartbeat
// --------------------------------------------------------------------------

// Heartbeat is the empty structured message sent by Notify. A receiver treats
// every payload of this length or shorter as "alive, nothing happened"
var Heartbeat = []byte("{}")

// HeartbeatLen is the length threshold used to tell notices from heartbeats
const HeartbeatLen = 2

// IsNotice reports whether a payload is a real event rather than a heartbeat
func IsNotice(payload []byte) bool {
	return len(payload) > HeartbeatLen
}

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message is the structured envelope for events that go through master.
// The transport treats payloads as opaque, this type is a convenience for
// callers that want typed events.
type Message struct {
	// Type of message, the meaning is up to master and its clients
	MsgType int32 `json:"msg_type"`

	// GenTime is the creation time in nanoseconds since the unix epoch
	GenTime int64 `json:"gen_time"`

	// Data is the raw json body of the event
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message of the given type stamped with the current time
func NewMessage(msgType int32, data json.RawMessage) *Message {
	return &Message{
		MsgType: msgType,
		GenTime: time.Now().UnixNano(),
		Data:    data,
	}
}
