package ipc

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"go.nanomsg.org/mangos/v3"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var Logger = logger.GetLogger("transport/ipc")

const (
	scheme = "ipc://"

	// nonBlockingDeadline stands in for a zero receive timeout, mangos
	// treats a zero deadline as "wait forever"
	nonBlockingDeadline = time.Microsecond

	// replyForeverDeadline stands in for NoTimeout on rep sockets, which
	// only accept a positive deadline
	replyForeverDeadline = 100 * 365 * 24 * time.Hour

	// staleProbeTimeout bounds the dial used to tell a live socket file from a stale one
	staleProbeTimeout = 100 * time.Millisecond
)

// socket implements transport.ISocket on top of a mangos socket
type socket struct {
	protocol  transport.Protocol
	sock      mangos.Socket
	last      []byte
	peers     atomic.Int64
	counters  *socketCounters
	closeOnce sync.Once
	closeErr  error
}

func newSocket(p transport.Protocol, sock mangos.Socket) *socket {
	s := &socket{
		protocol: p,
		sock:     sock,
		counters: countersFor(p),
	}
	sock.SetPipeEventHook(s.onPipeEvent)
	s.counters.opened.Inc()
	return s
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.ISocket)
// --------------------------------------------------------------------------

func (s *socket) Protocol() transport.Protocol {
	return s.protocol
}

func (s *socket) Connect(url string) error {
	if !strings.HasPrefix(url, scheme) {
		return fmt.Errorf("%w: not an ipc url: %s", common.ErrAddressResolution, url)
	}
	// asynchronous dial: the peer may bind later, mangos keeps redialing
	err := s.sock.DialOptions(url, map[string]interface{}{
		mangos.OptionDialAsynch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to connect %s socket to %s: %v", common.ErrConnection, s.protocol, url, err)
	}
	Logger.Debugf("%s socket connecting to %s", s.protocol, url)
	return nil
}

func (s *socket) Bind(url string) error {
	if !strings.HasPrefix(url, scheme) {
		return fmt.Errorf("%w: not an ipc url: %s", common.ErrAddressResolution, url)
	}
	path := strings.TrimPrefix(url, scheme)
	if err := removeStaleSocket(path); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConnection, err)
	}
	if err := s.sock.Listen(url); err != nil {
		return fmt.Errorf("%w: failed to bind %s socket to %s: %v", common.ErrConnection, s.protocol, url, err)
	}
	Logger.Debugf("%s socket bound to %s", s.protocol, url)
	return nil
}

func (s *socket) SetRecvTimeout(timeout time.Duration) error {
	// push and pub sockets reject the option
	if !s.protocol.Receives() {
		return nil
	}
	deadline := timeout
	switch {
	case timeout < 0 && s.protocol == transport.ProtocolReply:
		deadline = replyForeverDeadline
	case timeout < 0:
		deadline = 0
	case timeout == 0:
		deadline = nonBlockingDeadline
	}
	if err := s.sock.SetOption(mangos.OptionRecvDeadline, deadline); err != nil {
		return fmt.Errorf("failed to set receive timeout on %s socket: %v", s.protocol, err)
	}
	return nil
}

func (s *socket) Subscribe(topic []byte) error {
	if s.protocol != transport.ProtocolSubscribe {
		return fmt.Errorf("%w: subscribe on %s socket", common.ErrProtocolMisuse, s.protocol)
	}
	if err := s.sock.SetOption(mangos.OptionSubscribe, topic); err != nil {
		return fmt.Errorf("failed to subscribe to %q: %v", topic, err)
	}
	return nil
}

func (s *socket) Send(msg []byte) error {
	if err := s.sock.Send(msg); err != nil {
		s.counters.sendErrors.Inc()
		return fmt.Errorf("%w: %s send failed: %v", common.ErrTransport, s.protocol, err)
	}
	s.counters.sent.Inc()
	return nil
}

func (s *socket) Recv() ([]byte, error) {
	msg, err := s.sock.Recv()
	if err != nil {
		if errors.Is(err, mangos.ErrRecvTimeout) {
			s.counters.recvTimeouts.Inc()
			return nil, common.ErrTimeout
		}
		return nil, fmt.Errorf("%w: %s receive failed: %v", common.ErrTransport, s.protocol, err)
	}
	s.counters.received.Inc()
	s.last = msg
	return msg, nil
}

func (s *socket) LastMessage() []byte {
	return s.last
}

func (s *socket) Peers() int {
	return int(s.peers.Load())
}

func (s *socket) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.sock.Close()
		s.counters.closed.Inc()
		Logger.Debugf("%s socket closed", s.protocol)
	})
	return s.closeErr
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// onPipeEvent keeps track of attached peers, mangos calls it from its own goroutines
func (s *socket) onPipeEvent(event mangos.PipeEvent, _ mangos.Pipe) {
	switch event {
	case mangos.PipeEventAttached:
		s.peers.Add(1)
		s.counters.attached.Inc()
		Logger.Debugf("%s socket peer attached", s.protocol)
	case mangos.PipeEventDetached:
		if s.peers.Add(-1) < 0 {
			s.peers.Store(0)
		}
		s.counters.detached.Inc()
		Logger.Debugf("%s socket peer detached", s.protocol)
	}
}

// removeStaleSocket removes a socket file nobody is listening on anymore.
// A live socket is left untouched, binding to it then fails as expected
func removeStaleSocket(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", path, staleProbeTimeout)
	if err == nil {
		conn.Close()
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale socket %s: %v", path, err)
	}
	Logger.Infof("removed stale socket %s", path)
	return nil
}
