package util

import (
	"fmt"
	"github.com/ValentinKolb/dIO/rpc/common"
	"github.com/ValentinKolb/dIO/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"strings"
	"time"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

var Logger = logger.GetLogger("cli")

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupDeviceFlags adds the io device flags to a command
func SetupDeviceFlags(cmd *cobra.Command) {
	key := "root"
	cmd.PersistentFlags().String(key, common.DefaultSocketRoot(), WrapString("The socket root directory, all ipc endpoints are created below it"))

	key = "name"
	cmd.PersistentFlags().String(key, "dio-cli", WrapString("The name of this process, used for logging"))

	key = "low-latency"
	cmd.PersistentFlags().Bool(key, false, WrapString("Run in low latency mode: notifications are not sent and the observer does not block"))

	key = "notice-timeout"
	cmd.PersistentFlags().Int(key, int(common.DefaultNoticeTimeout.Milliseconds()), WrapString("How long the observer waits for a notice from master (in milliseconds, ignored in low latency mode)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "info", WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, false, WrapString("Print the socket metrics in prometheus format after the command"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("dio")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetDeviceConfig reads the device configuration from viper
func GetDeviceConfig() (*common.DeviceConfig, error) {
	conf := &common.DeviceConfig{
		Root:          viper.GetString("root"),
		Name:          viper.GetString("name"),
		LowLatency:    viper.GetBool("low-latency"),
		NoticeTimeout: time.Duration(viper.GetInt("notice-timeout")) * time.Millisecond,
		LogLevel:      viper.GetString("log-level"),
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// InitLogging initializes the loggers from the configured log level
func InitLogging(conf *common.DeviceConfig) error {
	if err := common.InitLoggers(conf.LogLevel); err != nil {
		return err
	}
	Logger.Debugf("%s", conf.String())
	return nil
}

// GetLocation builds a location from the mode, category, group and name flags
func GetLocation() (common.Location, error) {
	mode, err := common.ParseMode(viper.GetString("mode"))
	if err != nil {
		return common.Location{}, err
	}
	category, err := common.ParseCategory(viper.GetString("category"))
	if err != nil {
		return common.Location{}, err
	}
	return common.NewLocation(mode, category, viper.GetString("group"), viper.GetString("location-name"))
}

// GetProtocol reads the protocol flag
func GetProtocol() (transport.Protocol, error) {
	return transport.ParseProtocol(viper.GetString("protocol"))
}

// WriteMetrics writes the metrics to w if the metrics flag is set
func WriteMetrics(w io.Writer) {
	if !viper.GetBool("metrics") {
		return
	}
	fmt.Fprintln(w)
	metrics.WritePrometheus(w, false)
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
