package device

import (
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"sync"
)

// MasterService is the synchronous request/reply channel to master
type MasterService struct {
	mu     sync.Mutex
	socket transport.ISocket
}

func newMasterService(urls URLFactory, sockets transport.ISocketFactory) (*MasterService, error) {
	url, err := urls.ConnectURL(common.Master, transport.ProtocolRequest)
	if err != nil {
		return nil, err
	}
	s, err := sockets.NewSocket(transport.ProtocolRequest)
	if err != nil {
		return nil, err
	}
	if err := s.SetRecvTimeout(transport.NoTimeout); err != nil {
		s.Close()
		return nil, err
	}
	Logger.Infof("ready to use master service [%s]", url)
	if err := s.Connect(url); err != nil {
		s.Close()
		return nil, err
	}
	return &MasterService{socket: s}, nil
}

// Request sends payload to master and blocks until the reply arrives.
// Concurrent calls are serialized, there is never more than one request
// outstanding. There is no timeout and no retry.
func (m *MasterService) Request(payload []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.socket.Send(payload); err != nil {
		return nil, err
	}
	return m.socket.Recv()
}

// Close closes the underlying socket
func (m *MasterService) Close() error {
	return m.socket.Close()
}
