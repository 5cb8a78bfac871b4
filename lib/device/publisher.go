package device

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"sync"
)

// Publisher is the sending side of the master notification channel
type Publisher interface {
	// Notify signals "something changed" to master. It is best effort, no
	// reply is awaited. Sends are queued while master is not attached, once
	// the queue is full Notify blocks until master attaches
	Notify() error
	// Publish sends a payload verbatim to master, it queues and blocks like Notify
	Publish(payload []byte) error
	// Close releases the underlying socket, if any
	Close() error
}

// --------------------------------------------------------------------------
// noop publisher (master role)
// --------------------------------------------------------------------------

// noopPublisher is used by master itself, master never signals itself
type noopPublisher struct{}

func (noopPublisher) Notify() error {
	return nil
}

func (noopPublisher) Publish(_ []byte) error {
	return fmt.Errorf("%w: noop publisher does not publish anything", common.ErrProtocolMisuse)
}

func (noopPublisher) Close() error {
	return nil
}

// --------------------------------------------------------------------------
// socket publisher (client role)
// --------------------------------------------------------------------------

// socketPublisher pushes to master. In low latency mode Notify is a no-op
// because consumers poll directly and do not wait for signals.
type socketPublisher struct {
	mu         sync.Mutex
	socket     transport.ISocket
	lowLatency bool
}

func newSocketPublisher(urls URLFactory, sockets transport.ISocketFactory, lowLatency bool) (*socketPublisher, error) {
	url, err := urls.ConnectURL(common.Master, transport.ProtocolPush)
	if err != nil {
		return nil, err
	}
	s, err := sockets.NewSocket(transport.ProtocolPush)
	if err != nil {
		return nil, err
	}
	if err := s.Connect(url); err != nil {
		s.Close()
		return nil, err
	}
	Logger.Debugf("ready to publish and notify to master [%s]", url)
	return &socketPublisher{socket: s, lowLatency: lowLatency}, nil
}

func (p *socketPublisher) Notify() error {
	if p.lowLatency {
		return nil
	}
	return p.Publish(common.Heartbeat)
}

func (p *socketPublisher) Publish(payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.socket.Send(payload)
}

// Peers returns the number of attached master sockets
func (p *socketPublisher) Peers() int {
	return p.socket.Peers()
}

func (p *socketPublisher) Close() error {
	Logger.Debugf("master publisher closing")
	err := p.socket.Close()
	Logger.Debugf("master publisher closed")
	return err
}
