package client

import (
	"github.com/ValentinKolb/dIO/cmd/util"
	"github.com/ValentinKolb/dIO/lib/device"
	"github.com/ValentinKolb/dIO/rpc/serializer"
	"github.com/ValentinKolb/dIO/rpc/transport/ipc"
	"github.com/spf13/cobra"
)

var (
	ioDevice *device.Device
	s        = serializer.NewJSONSerializer()

	// ClientCommands represents the client command group
	ClientCommands = &cobra.Command{
		Use:                "client",
		Short:              "Talk to master as a client io device",
		PersistentPreRunE:  setupClientDevice,
		PersistentPostRunE: teardownClientDevice,
	}
)

func init() {
	// Add subcommands
	ClientCommands.AddCommand(notifyCmd)
	ClientCommands.AddCommand(publishCmd)
	ClientCommands.AddCommand(requestCmd)
	ClientCommands.AddCommand(watchCmd)
}

// setupClientDevice creates the client io device used by the subcommands
func setupClientDevice(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config, err := util.GetDeviceConfig()
	if err != nil {
		return err
	}
	if err := util.InitLogging(config); err != nil {
		return err
	}

	ioDevice, err = device.NewClientDevice(*config, ipc.NewSocketFactory())
	return err
}

// teardownClientDevice closes the device and prints the metrics if requested
func teardownClientDevice(cmd *cobra.Command, _ []string) error {
	if ioDevice == nil {
		return nil
	}
	err := ioDevice.Close()
	util.WriteMetrics(cmd.OutOrStdout())
	return err
}
