package device

import (
	"errors"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"sync"
	"time"
)

// fakeSocket records everything done on it and replays queued messages on Recv
type fakeSocket struct {
	mu        sync.Mutex
	protocol  transport.Protocol
	connected []string
	bound     []string
	topics    [][]byte
	timeout   time.Duration
	sent      [][]byte
	inbox     [][]byte
	recvErr   error
	last      []byte
	closed    int

	// onSend lets a test answer a request
	onSend func(msg []byte)
}

func (f *fakeSocket) Protocol() transport.Protocol { return f.protocol }

func (f *fakeSocket) Connect(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = append(f.connected, url)
	return nil
}

func (f *fakeSocket) Bind(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bound = append(f.bound, url)
	return nil
}

func (f *fakeSocket) SetRecvTimeout(timeout time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeout = timeout
	return nil
}

func (f *fakeSocket) Subscribe(topic []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakeSocket) Send(msg []byte) error {
	f.mu.Lock()
	f.sent = append(f.sent, append([]byte(nil), msg...))
	onSend := f.onSend
	f.mu.Unlock()
	if onSend != nil {
		onSend(msg)
	}
	return nil
}

func (f *fakeSocket) Recv() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inbox) > 0 {
		msg := f.inbox[0]
		f.inbox = f.inbox[1:]
		f.last = msg
		return msg, nil
	}
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	return nil, common.ErrTimeout
}

func (f *fakeSocket) LastMessage() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeSocket) Peers() int { return 0 }

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSocket) queue(msgs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.inbox = append(f.inbox, []byte(m))
	}
}

func (f *fakeSocket) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeFactory hands out fake sockets and can fail for chosen protocols
type fakeFactory struct {
	mu      sync.Mutex
	sockets []*fakeSocket
	failOn  map[transport.Protocol]bool
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{failOn: make(map[transport.Protocol]bool)}
}

func (f *fakeFactory) GetName() string { return "fake" }

func (f *fakeFactory) NewSocket(p transport.Protocol) (transport.ISocket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[p] {
		return nil, errors.New("fake socket failure")
	}
	s := &fakeSocket{protocol: p}
	f.sockets = append(f.sockets, s)
	return s, nil
}

// byProtocol returns the first socket opened with protocol p
func (f *fakeFactory) byProtocol(p transport.Protocol) *fakeSocket {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sockets {
		if s.protocol == p {
			return s
		}
	}
	return nil
}
