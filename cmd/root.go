package cmd

import (
	"fmt"
	"github.com/ValentinKolb/dIO/cmd/client"
	"github.com/ValentinKolb/dIO/cmd/url"
	"github.com/ValentinKolb/dIO/cmd/util"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dio",
		Short: "local inter-process messaging",
		Long: fmt.Sprintf(`dIO (v%s)

Addressing and coordination layer for processes on one machine. Processes
find each other by location instead of socket paths, signal and query the
master process and open push/pull, pub/sub and req/rep channels over ipc.

All flags can be set as environment variables DIO_<FLAG> (e.g. DIO_LOW_LATENCY=true).`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dIO",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dIO v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(client.ClientCommands)
	RootCmd.AddCommand(url.URLCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupDeviceFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
