package transport

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"time"
)

// NoTimeout makes Recv block until a message arrives or the socket is closed
const NoTimeout time.Duration = -1

// --------------------------------------------------------------------------
// Protocol
// --------------------------------------------------------------------------

// Protocol is the scalability pattern (channel role) of a socket. Every
// protocol has exactly one opposite, the role its peer has to use.
type Protocol uint8

const (
	ProtocolReply Protocol = iota
	ProtocolRequest
	ProtocolPush
	ProtocolPull
	ProtocolPublish
	ProtocolSubscribe
)

var protocolNames = map[Protocol]string{
	ProtocolReply:     "rep",
	ProtocolRequest:   "req",
	ProtocolPush:      "push",
	ProtocolPull:      "pull",
	ProtocolPublish:   "pub",
	ProtocolSubscribe: "sub",
}

var protocolOpposites = map[Protocol]Protocol{
	ProtocolReply:     ProtocolRequest,
	ProtocolRequest:   ProtocolReply,
	ProtocolPush:      ProtocolPull,
	ProtocolPull:      ProtocolPush,
	ProtocolPublish:   ProtocolSubscribe,
	ProtocolSubscribe: ProtocolPublish,
}

// Protocols returns all known protocols
func Protocols() []Protocol {
	return []Protocol{ProtocolReply, ProtocolRequest, ProtocolPush, ProtocolPull, ProtocolPublish, ProtocolSubscribe}
}

// Valid reports whether p is a known protocol
func (p Protocol) Valid() bool {
	_, ok := protocolNames[p]
	return ok
}

// Receives reports whether a socket of this protocol can receive messages.
// Push and publish sockets only send
func (p Protocol) Receives() bool {
	return p.Valid() && p != ProtocolPush && p != ProtocolPublish
}

// String returns the stable textual name of the protocol (used as url suffix)
func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Protocol(%d)", uint8(p))
}

// Opposite returns the protocol of the peer. Opposite(Opposite(p)) == p
func (p Protocol) Opposite() Protocol {
	if o, ok := protocolOpposites[p]; ok {
		return o
	}
	return p
}

// ParseProtocol converts a textual name back to a Protocol
func ParseProtocol(name string) (Protocol, error) {
	for p, n := range protocolNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown protocol %q", common.ErrAddressResolution, name)
}

// --------------------------------------------------------------------------
// Socket
// --------------------------------------------------------------------------

// ISocket is the raw transport primitive. A socket has a single protocol
// and is either connected or bound to one or more urls.
type ISocket interface {
	// Protocol returns the protocol the socket was created with
	Protocol() Protocol
	// Connect dials the url. Connecting does not wait for the peer to exist
	Connect(url string) error
	// Bind listens on the url
	Bind(url string) error
	// SetRecvTimeout sets the receive timeout, see NoTimeout. It is accepted
	// and ignored by protocols that never receive
	SetRecvTimeout(timeout time.Duration) error
	// Subscribe adds a topic prefix filter, only valid for ProtocolSubscribe
	Subscribe(topic []byte) error
	// Send sends a message
	Send(msg []byte) error
	// Recv receives a message. It returns common.ErrTimeout when the receive
	// timeout expired and the last message is kept in that case
	Recv() ([]byte, error)
	// LastMessage returns the last message received
	LastMessage() []byte
	// Peers returns the number of currently attached peers
	Peers() int
	// Close closes the socket, calling it more than once is a no-op
	Close() error
}

// ISocketFactory creates sockets for a protocol
type ISocketFactory interface {
	// NewSocket opens a new, unconnected socket
	NewSocket(p Protocol) (ISocket, error)
	// GetName returns the name of the transport type (e.g., "ipc")
	GetName() string
}
