package serializer

import "github.com/ValentinKolb/dIO/rpc/common"

// IRPCSerializer turns a typed event envelope into the payload sent through
// master and back. Implementations must never produce a payload that a
// receiver would classify as a heartbeat.
type IRPCSerializer interface {
	// Serialize encodes the envelope for Publisher.Publish or MasterService.Request
	Serialize(msg common.Message) ([]byte, error)
	// Deserialize decodes a payload taken from Observer.Notice or a master reply into msg
	Deserialize(b []byte, msg *common.Message) error
}
