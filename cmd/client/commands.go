package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/ValentinKolb/dIO/cmd/util"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"time"
)

// lowLatencyPause keeps the watch loop from spinning on a non-blocking observer
const lowLatencyPause = time.Millisecond

var (
	notifyCmd = &cobra.Command{
		Use:   "notify",
		Short: "Signal master that something changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := waitMaster(cmd); err != nil {
				return err
			}
			if err := ioDevice.Publisher().Notify(); err != nil {
				return err
			}
			linger(cmd)
			if ioDevice.IsLowLatency() {
				fmt.Fprintln(cmd.OutOrStdout(), "low latency mode, nothing sent")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "notified master")
			}
			return nil
		},
	}
	publishCmd = &cobra.Command{
		Use:   "publish [payload]",
		Short: "Publish a payload to master",
		Long:  `Publish a payload verbatim to master. With --type the payload is used as the data of a message envelope.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildPayload(cmd, args[0])
			if err != nil {
				return err
			}
			if err := waitMaster(cmd); err != nil {
				return err
			}
			if err := ioDevice.Publisher().Publish(payload); err != nil {
				return err
			}
			linger(cmd)
			fmt.Fprintln(cmd.OutOrStdout(), "published successfully")
			return nil
		},
	}
	requestCmd = &cobra.Command{
		Use:   "request [payload]",
		Short: "Send a request to master and print the reply",
		Long:  `Send a request to master and block until it replies. With --type the payload is used as the data of a message envelope.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := buildPayload(cmd, args[0])
			if err != nil {
				return err
			}
			reply, err := ioDevice.Service().Request(payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(reply))
			return nil
		},
	}
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Print notices broadcast by master",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			observer := ioDevice.Observer()
			for seen := 0; count == 0 || seen < count; {
				if ctx.Err() != nil {
					return nil
				}
				if !observer.Wait() {
					if observer.Timeout() == 0 {
						time.Sleep(lowLatencyPause)
					}
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(observer.Notice()))
				seen++
			}
			return nil
		},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{publishCmd, requestCmd} {
		cmd.Flags().Int32("type", 0, util.WrapString("Wrap the payload as data of a message with this msg_type"))
	}
	for _, cmd := range []*cobra.Command{notifyCmd, publishCmd} {
		cmd.Flags().Int("connect-timeout", 1000, util.WrapString("How long to wait for master to be reachable before sending (in milliseconds)"))
		cmd.Flags().Int("linger", 100, util.WrapString("How long to keep the socket open after sending so queued messages are flushed (in milliseconds)"))
	}
	watchCmd.Flags().Int("count", 0, util.WrapString("Stop after this many notices, 0 watches until interrupted"))
}

// buildPayload returns the raw payload or wraps it into a message envelope if --type is set
func buildPayload(cmd *cobra.Command, raw string) ([]byte, error) {
	if !cmd.Flags().Changed("type") {
		return []byte(raw), nil
	}
	msgType, _ := cmd.Flags().GetInt32("type")
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("payload must be valid json when --type is set")
	}
	return s.Serialize(*common.NewMessage(msgType, json.RawMessage(raw)))
}

// linger keeps the device open for a moment, sends are queued and closing drops what is still queued
func linger(cmd *cobra.Command) {
	lingerMs, _ := cmd.Flags().GetInt("linger")
	time.Sleep(time.Duration(lingerMs) * time.Millisecond)
}

// waitMaster waits until master is reachable so queued messages are not dropped on exit
func waitMaster(cmd *cobra.Command) error {
	timeoutMs, _ := cmd.Flags().GetInt("connect-timeout")
	if !ioDevice.WaitMaster(time.Duration(timeoutMs) * time.Millisecond) {
		return fmt.Errorf("%w: master not reachable within %d ms", common.ErrConnection, timeoutMs)
	}
	return nil
}
