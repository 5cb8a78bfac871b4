package serializer

import (
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
)

// NewJSONSerializer creates the serializer for the {msg_type, gen_time, data} envelope
func NewJSONSerializer() IRPCSerializer {
	return &jsonSerializer{}
}

// jsonSerializer writes the envelope as a json object. msg_type and gen_time
// are always present, so the result is longer than the "{}" heartbeat
type jsonSerializer struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (jsonSerializer) Serialize(msg common.Message) ([]byte, error) {
	// raw data is embedded as is, reject it here instead of sending a broken notice
	if len(msg.Data) > 0 && !json.Valid(msg.Data) {
		return nil, fmt.Errorf("data of message type %d is not valid json", msg.MsgType)
	}
	return json.Marshal(msg)
}

func (jsonSerializer) Deserialize(b []byte, msg *common.Message) error {
	if !common.IsNotice(b) {
		return fmt.Errorf("payload %q is a heartbeat, not a message", b)
	}
	if err := json.Unmarshal(b, msg); err != nil {
		return fmt.Errorf("failed to decode message: %v", err)
	}
	return nil
}
