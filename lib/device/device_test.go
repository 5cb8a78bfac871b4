package device

import (
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func testConfig(t *testing.T) common.DeviceConfig {
	t.Helper()
	config := common.NewDefaultDeviceConfig()
	config.Root = t.TempDir()
	config.Name = "test"
	return config
}

// TestMasterDevice tests that the master role opens nothing towards master
func TestMasterDevice(t *testing.T) {
	factory := newFakeFactory()
	d, err := NewMasterDevice(testConfig(t), factory)
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.IsMaster())
	assert.Nil(t, d.Observer())
	assert.Nil(t, d.Service())
	assert.Empty(t, factory.sockets)

	assert.NoError(t, d.Publisher().Notify())
	assert.ErrorIs(t, d.Publisher().Publish([]byte(`{"a":1}`)), common.ErrProtocolMisuse)
}

// TestClientDevice tests that the client role wires observer, service and publisher to master
func TestClientDevice(t *testing.T) {
	factory := newFakeFactory()
	config := testConfig(t)
	d, err := NewClientDevice(config, factory)
	require.NoError(t, err)

	assert.False(t, d.IsMaster())
	require.NotNil(t, d.Observer())
	require.NotNil(t, d.Service())
	assert.Equal(t, config.NoticeTimeout, d.Observer().Timeout())
	require.Len(t, factory.sockets, 3)

	for _, p := range []transport.Protocol{transport.ProtocolSubscribe, transport.ProtocolRequest, transport.ProtocolPush} {
		sock := factory.byProtocol(p)
		require.NotNil(t, sock, "missing %s socket", p)
		expected, err := d.URLFactory().ConnectURL(common.Master, p)
		require.NoError(t, err)
		assert.Equal(t, []string{expected}, sock.connected)
	}

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	for _, sock := range factory.sockets {
		assert.Equal(t, 1, sock.closed, "%s socket must be closed exactly once", sock.protocol)
	}
}

// TestClientDeviceLowLatency tests the low latency wiring
func TestClientDeviceLowLatency(t *testing.T) {
	factory := newFakeFactory()
	config := testConfig(t)
	config.LowLatency = true
	d, err := NewClientDevice(config, factory)
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.IsLowLatency())
	assert.Equal(t, time.Duration(0), d.Observer().Timeout())

	require.NoError(t, d.Publisher().Notify())
	assert.Equal(t, 0, factory.byProtocol(transport.ProtocolPush).sentCount())
}

// TestClientDeviceConstructionFailure tests that a failing channel aborts construction and closes the others
func TestClientDeviceConstructionFailure(t *testing.T) {
	// channels are opened in this order: observer, service, publisher
	tests := []struct {
		failing transport.Protocol
		opened  int
	}{
		{transport.ProtocolSubscribe, 0},
		{transport.ProtocolRequest, 1},
		{transport.ProtocolPush, 2},
	}
	for _, tc := range tests {
		t.Run(tc.failing.String(), func(t *testing.T) {
			factory := newFakeFactory()
			factory.failOn[tc.failing] = true

			var d *Device
			var err error
			require.NotPanics(t, func() { d, err = NewClientDevice(testConfig(t), factory) })
			assert.Nil(t, d)
			assert.ErrorIs(t, err, common.ErrConnection)

			require.Len(t, factory.sockets, tc.opened)
			for _, sock := range factory.sockets {
				assert.Equal(t, 1, sock.closed, "%s socket must be closed", sock.protocol)
			}
		})
	}
}

// TestInvalidConfig tests that devices are not created from an invalid config
func TestInvalidConfig(t *testing.T) {
	config := testConfig(t)
	config.Root = ""
	_, err := NewMasterDevice(config, newFakeFactory())
	assert.Error(t, err)

	_, err = NewClientDevice(testConfig(t), nil)
	assert.Error(t, err)
}

// TestRawSockets tests ConnectSocket and BindSocket url resolution and timeouts
func TestRawSockets(t *testing.T) {
	factory := newFakeFactory()
	config := testConfig(t)
	d, err := NewMasterDevice(config, factory)
	require.NoError(t, err)

	loc := common.Location{Mode: common.ModeLive, Category: common.CategoryTD, Group: "sim", Name: "acc"}

	bound, err := d.BindSocket(loc, transport.ProtocolReply, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, transport.ProtocolReply, bound.Protocol())
	connected, err := d.ConnectSocket(loc, transport.ProtocolRequest, transport.NoTimeout)
	require.NoError(t, err)

	bindSock := factory.byProtocol(transport.ProtocolReply)
	connectSock := factory.byProtocol(transport.ProtocolRequest)
	assert.Equal(t, bindSock.bound, connectSock.connected)
	assert.Equal(t, 100*time.Millisecond, bindSock.timeout)
	assert.Equal(t, transport.NoTimeout, connectSock.timeout)

	// the socket dir was created for the bind
	dir, err := d.URLFactory().SocketDir(loc)
	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// a socket closed by the caller is not closed again by the device
	require.NoError(t, connected.Close())
	require.NoError(t, d.Close())
	assert.Equal(t, 1, connectSock.closed)
	assert.Equal(t, 1, bindSock.closed)

	_, err = d.ConnectSocket(loc, transport.ProtocolPush, 0)
	assert.ErrorIs(t, err, common.ErrConnection, "closed device must not open sockets")
}

// TestRawSocketsInvalidLocation tests that address errors are returned and no socket is opened
func TestRawSocketsInvalidLocation(t *testing.T) {
	factory := newFakeFactory()
	d, err := NewMasterDevice(testConfig(t), factory)
	require.NoError(t, err)
	defer d.Close()

	_, err = d.ConnectSocket(common.Location{}, transport.ProtocolPush, 0)
	assert.ErrorIs(t, err, common.ErrAddressResolution)
	_, err = d.BindSocket(common.Location{Group: "g"}, transport.ProtocolPull, 0)
	assert.ErrorIs(t, err, common.ErrAddressResolution)
	assert.Empty(t, factory.sockets)
}
