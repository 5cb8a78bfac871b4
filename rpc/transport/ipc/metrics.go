package ipc

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

// socketCounters holds the per protocol event counters of ipc sockets
type socketCounters struct {
	opened       *metrics.Counter
	closed       *metrics.Counter
	sent         *metrics.Counter
	sendErrors   *metrics.Counter
	received     *metrics.Counter
	recvTimeouts *metrics.Counter
	attached     *metrics.Counter
	detached     *metrics.Counter
}

func countersFor(p transport.Protocol) *socketCounters {
	counter := func(name string) *metrics.Counter {
		return metrics.GetOrCreateCounter(fmt.Sprintf(`dio_socket_%s_total{protocol=%q}`, name, p.String()))
	}
	return &socketCounters{
		opened:       counter("opened"),
		closed:       counter("closed"),
		sent:         counter("sent"),
		sendErrors:   counter("send_errors"),
		received:     counter("received"),
		recvTimeouts: counter("recv_timeouts"),
		attached:     counter("peers_attached"),
		detached:     counter("peers_detached"),
	}
}
