package url

import (
	"fmt"
	"github.com/ValentinKolb/dIO/cmd/util"
	"github.com/ValentinKolb/dIO/lib/device"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// URLCmd prints the endpoints of a location
var URLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the bind and connect urls of a location",
	Long: `Print the ipc urls a socket with the given protocol binds to and connects to for a location.

The connect url resolves to the bind url of the opposite protocol, e.g. a "sub"
socket connects to the url a "pub" socket binds to.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return util.BindCommandFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		loc, err := util.GetLocation()
		if err != nil {
			return err
		}
		p, err := util.GetProtocol()
		if err != nil {
			return err
		}

		urls := device.NewURLFactory(viper.GetString("root"))
		bindURL, err := urls.BindURL(loc, p)
		if err != nil {
			return err
		}
		connectURL, err := urls.ConnectURL(loc, p)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "bind:    %s\nconnect: %s\n", bindURL, connectURL)
		return nil
	},
}

func init() {
	key := "mode"
	URLCmd.Flags().String(key, "live", util.WrapString("Mode of the location (live, data, replay, backtest)"))

	key = "category"
	URLCmd.Flags().String(key, "system", util.WrapString("Category of the location (md, td, strategy, system)"))

	key = "group"
	URLCmd.Flags().String(key, "master", util.WrapString("Group of the location"))

	key = "location-name"
	URLCmd.Flags().String(key, "master", util.WrapString("Name of the location"))

	key = "protocol"
	URLCmd.Flags().String(key, "pub", util.WrapString("Protocol of the socket (rep, req, push, pull, pub, sub)"))
}
