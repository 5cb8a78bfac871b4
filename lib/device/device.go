package device

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var Logger = logger.GetLogger("device")

const masterPollInterval = 5 * time.Millisecond

// Device assembles the channels of a process. A master device only has a
// noop publisher, a client device is wired to master with a publisher, an
// observer and a service. Both can open raw sockets to any location.
type Device struct {
	id      uuid.UUID
	config  common.DeviceConfig
	urls    URLFactory
	sockets transport.ISocketFactory

	publisher Publisher
	observer  *Observer      // nil for master
	service   *MasterService // nil for master

	// raw sockets handed out by ConnectSocket and BindSocket, closed with the device
	channels     *xsync.MapOf[uint64, *trackedSocket]
	nextChannel  atomic.Uint64
	closeOnce    sync.Once
	closeErr     error
	closedSignal atomic.Bool
}

// NewMasterDevice creates the device of the master process itself
//
// Usage:
//
//	d, err := device.NewMasterDevice(config, ipc.NewSocketFactory())
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//	pub, err := d.BindSocket(common.Master, transport.ProtocolPublish, transport.NoTimeout)
func NewMasterDevice(config common.DeviceConfig, sockets transport.ISocketFactory) (*Device, error) {
	d, err := newDevice(config, sockets)
	if err != nil {
		return nil, err
	}
	d.publisher = noopPublisher{}

	Logger.Debugf("created master io device %s (low latency: %t)", d.id, config.LowLatency)
	return d, nil
}

// NewClientDevice creates a device wired to master. The observer, the
// master service and the publisher are connected eagerly.
func NewClientDevice(config common.DeviceConfig, sockets transport.ISocketFactory) (_ *Device, err error) {
	d, err := newDevice(config, sockets)
	if err != nil {
		return nil, err
	}

	// close what was opened so far if the construction fails
	defer func() {
		if err != nil {
			d.Close()
		}
	}()

	d.observer, err = newObserver(d.urls, sockets, config.ObserverTimeout())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open master observer: %w", common.ErrConnection, err)
	}

	d.service, err = newMasterService(d.urls, sockets)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open master service: %w", common.ErrConnection, err)
	}

	publisher, err := newSocketPublisher(d.urls, sockets, config.LowLatency)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open master publisher: %w", common.ErrConnection, err)
	}
	d.publisher = publisher

	Logger.Debugf("created client io device %s %s (low latency: %t)", config.Name, d.id, config.LowLatency)
	return d, nil
}

func newDevice(config common.DeviceConfig, sockets transport.ISocketFactory) (*Device, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sockets == nil {
		return nil, errors.New("socket factory must not be nil")
	}
	return &Device{
		id:        uuid.New(),
		config:    config,
		urls:      NewURLFactory(config.Root),
		sockets:   sockets,
		publisher: noopPublisher{},
		channels:  xsync.NewMapOf[uint64, *trackedSocket](),
	}, nil
}

// --------------------------------------------------------------------------
// Raw Sockets
// --------------------------------------------------------------------------

// ConnectSocket opens a socket with protocol p connected to loc and applies the receive timeout
func (d *Device) ConnectSocket(loc common.Location, p transport.Protocol, timeout time.Duration) (transport.ISocket, error) {
	url, err := d.urls.ConnectURL(loc, p)
	if err != nil {
		return nil, err
	}
	s, err := d.openSocket(p, timeout, func(s transport.ISocket) error { return s.Connect(url) })
	if err != nil {
		return nil, err
	}
	Logger.Infof("connected socket [%s] %s at %s with timeout %s", p, loc.Name, url, formatTimeout(timeout))
	return s, nil
}

// BindSocket opens a socket with protocol p bound at loc and applies the receive timeout.
// The socket directory of loc is created if needed
func (d *Device) BindSocket(loc common.Location, p transport.Protocol, timeout time.Duration) (transport.ISocket, error) {
	url, err := d.urls.BindURL(loc, p)
	if err != nil {
		return nil, err
	}
	dir, err := d.urls.SocketDir(loc)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: failed to create socket dir %s: %v", common.ErrConnection, dir, err)
	}
	s, err := d.openSocket(p, timeout, func(s transport.ISocket) error { return s.Bind(url) })
	if err != nil {
		return nil, err
	}
	Logger.Infof("bind to socket [%s] %s at %s with timeout %s", p, loc.Name, url, formatTimeout(timeout))
	return s, nil
}

func (d *Device) openSocket(p transport.Protocol, timeout time.Duration, attach func(transport.ISocket) error) (transport.ISocket, error) {
	if d.closedSignal.Load() {
		return nil, fmt.Errorf("%w: device %s is closed", common.ErrConnection, d.id)
	}
	s, err := d.sockets.NewSocket(p)
	if err != nil {
		return nil, err
	}
	if err := attach(s); err != nil {
		s.Close()
		return nil, err
	}
	if err := s.SetRecvTimeout(timeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrConnection, err)
	}

	id := d.nextChannel.Add(1)
	tracked := &trackedSocket{ISocket: s, release: func() { d.channels.Delete(id) }}
	d.channels.Store(id, tracked)
	return tracked, nil
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// ID returns the instance id of the device
func (d *Device) ID() uuid.UUID {
	return d.id
}

// Config returns the configuration the device was created with
func (d *Device) Config() common.DeviceConfig {
	return d.config
}

// URLFactory returns the address scheme of the device
func (d *Device) URLFactory() URLFactory {
	return d.urls
}

// IsLowLatency reports whether the device runs in low latency mode
func (d *Device) IsLowLatency() bool {
	return d.config.LowLatency
}

// IsMaster reports whether the device was created with NewMasterDevice
func (d *Device) IsMaster() bool {
	return d.service == nil
}

// Publisher returns the notification publisher
func (d *Device) Publisher() Publisher {
	return d.publisher
}

// Observer returns the master observer, nil for a master device
func (d *Device) Observer() *Observer {
	return d.observer
}

// Service returns the master service, nil for a master device
func (d *Device) Service() *MasterService {
	return d.service
}

// WaitMaster polls until the publisher is attached to master or the timeout
// elapsed. It always returns true for a master device, which has no superior
func (d *Device) WaitMaster(timeout time.Duration) bool {
	p, ok := d.publisher.(*socketPublisher)
	if !ok {
		return true
	}
	deadline := time.Now().Add(timeout)
	for p.Peers() == 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(masterPollInterval)
	}
	return true
}

// Close closes all channels of the device and every raw socket that is still open
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		d.closedSignal.Store(true)
		var errs []error

		if d.publisher != nil {
			errs = append(errs, d.publisher.Close())
		}
		if d.observer != nil {
			errs = append(errs, d.observer.Close())
		}
		if d.service != nil {
			errs = append(errs, d.service.Close())
		}

		d.channels.Range(func(_ uint64, s *trackedSocket) bool {
			errs = append(errs, s.Close())
			return true
		})

		d.closeErr = errors.Join(errs...)
		Logger.Debugf("io device %s closed", d.id)
	})
	return d.closeErr
}

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

func formatTimeout(timeout time.Duration) string {
	if timeout < 0 {
		return "none"
	}
	return fmt.Sprintf("%dms", timeout.Milliseconds())
}

// trackedSocket removes itself from the device registry when closed
type trackedSocket struct {
	transport.ISocket
	release func()
}

func (t *trackedSocket) Close() error {
	t.release()
	return t.ISocket.Close()
}
