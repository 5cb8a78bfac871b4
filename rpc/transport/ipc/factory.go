package ipc

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/pull"
	"go.nanomsg.org/mangos/v3/protocol/push"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	"go.nanomsg.org/mangos/v3/protocol/req"
	"go.nanomsg.org/mangos/v3/protocol/sub"
	"time"

	// register the ipc:// transport
	_ "go.nanomsg.org/mangos/v3/transport/ipc"
)

// socketFactory implements the ISocketFactory interface for ipc sockets
type socketFactory struct{}

// NewSocketFactory creates a factory for nanomsg compatible ipc sockets
func NewSocketFactory() transport.ISocketFactory {
	return &socketFactory{}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.ISocketFactory)
// --------------------------------------------------------------------------

func (f *socketFactory) GetName() string {
	return "ipc"
}

func (f *socketFactory) NewSocket(p transport.Protocol) (transport.ISocket, error) {
	var sock mangos.Socket
	var err error

	switch p {
	case transport.ProtocolReply:
		sock, err = rep.NewSocket()
	case transport.ProtocolRequest:
		sock, err = req.NewSocket()
	case transport.ProtocolPush:
		sock, err = push.NewSocket()
	case transport.ProtocolPull:
		sock, err = pull.NewSocket()
	case transport.ProtocolPublish:
		sock, err = pub.NewSocket()
	case transport.ProtocolSubscribe:
		sock, err = sub.NewSocket()
	default:
		return nil, fmt.Errorf("%w: unknown protocol %s", common.ErrAddressResolution, p)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s socket: %v", common.ErrConnection, p, err)
	}

	// requests are never resent behind the caller's back
	if p == transport.ProtocolRequest {
		if err := sock.SetOption(mangos.OptionRetryTime, time.Duration(0)); err != nil {
			Logger.Warningf("failed to disable request resend: %v", err)
		}
	}

	return newSocket(p, sock), nil
}
