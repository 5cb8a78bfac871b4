package cmd

import (
	"bytes"
	"github.com/ValentinKolb/dIO/lib/device"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/ValentinKolb/dIO/rpc/transport/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(args)
	require.NoError(t, RootCmd.Execute())
	return out.String()
}

// TestVersionCmd tests the version output
func TestVersionCmd(t *testing.T) {
	assert.Equal(t, "dIO v"+Version+"\n", execute(t, "version"))
}

// TestURLCmd tests that the url command prints the resolved endpoints
func TestURLCmd(t *testing.T) {
	out := execute(t, "url", "--root", "/var/dio", "--category", "td", "--group", "ctp", "--location-name", "acc", "--protocol", "sub")
	assert.Equal(t, "bind:    ipc:///var/dio/td/ctp/acc.sub\nconnect: ipc:///var/dio/td/ctp/acc.pub\n", out)
}

// TestClientNotifyCmd tests that the notify command delivers a heartbeat to master
func TestClientNotifyCmd(t *testing.T) {
	root, err := os.MkdirTemp("", "dio")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	config := common.NewDefaultDeviceConfig()
	config.Root = root
	master, err := device.NewMasterDevice(config, ipc.NewSocketFactory())
	require.NoError(t, err)
	defer master.Close()

	pull, err := master.BindSocket(common.Master, transport.ProtocolPull, 5*time.Second)
	require.NoError(t, err)

	out := execute(t, "client", "notify", "--root", root, "--connect-timeout", "5000", "--log-level", "error")
	assert.Contains(t, out, "notified master")

	msg, err := pull.Recv()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(msg))
}
