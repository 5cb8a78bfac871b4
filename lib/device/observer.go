package device

import (
	"errors"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"sync"
	"time"
)

// Observer is the receiving side of the master broadcast channel
type Observer struct {
	mu      sync.Mutex
	socket  transport.ISocket
	timeout time.Duration
}

func newObserver(urls URLFactory, sockets transport.ISocketFactory, timeout time.Duration) (*Observer, error) {
	url, err := urls.ConnectURL(common.Master, transport.ProtocolSubscribe)
	if err != nil {
		return nil, err
	}
	s, err := sockets.NewSocket(transport.ProtocolSubscribe)
	if err != nil {
		return nil, err
	}

	// subscribe before connecting so nothing is dropped in between
	if err := s.Subscribe([]byte("")); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.SetRecvTimeout(timeout); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.Connect(url); err != nil {
		s.Close()
		return nil, err
	}

	Logger.Debugf("observing master channel with timeout %s [%s]", formatTimeout(timeout), url)
	return &Observer{socket: s, timeout: timeout}, nil
}

// Wait waits up to the receive timeout for a message from master. It returns
// true only if the message is longer than the heartbeat. A timeout, a
// heartbeat and a closed socket all return false.
func (o *Observer) Wait() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	msg, err := o.socket.Recv()
	if err != nil {
		if !errors.Is(err, common.ErrTimeout) {
			Logger.Debugf("master observer receive failed: %v", err)
		}
		return false
	}
	return common.IsNotice(msg)
}

// Notice returns the last payload received, valid after Wait returned true
func (o *Observer) Notice() []byte {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.socket.LastMessage()
}

// Timeout returns the receive timeout of the observer
func (o *Observer) Timeout() time.Duration {
	return o.timeout
}

// Close closes the underlying socket and unblocks a pending Wait
func (o *Observer) Close() error {
	Logger.Debugf("master observer closing")
	err := o.socket.Close()
	Logger.Debugf("master observer closed")
	return err
}
