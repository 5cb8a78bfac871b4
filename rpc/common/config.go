package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultNoticeTimeout is how long an observer waits for a notice in normal mode
const DefaultNoticeTimeout = 1000 * time.Millisecond

// --------------------------------------------------------------------------
// Device configuration struct
// --------------------------------------------------------------------------

// DeviceConfig holds all configuration parameters of an io device.
// It is fixed at device construction.
type DeviceConfig struct {
	// Root is the socket root directory, every ipc endpoint lives below it
	Root string

	// Name of the client process, only used for logging
	Name string

	// LowLatency disables notifications and makes the observer non-blocking
	LowLatency bool

	// NoticeTimeout is the observer receive timeout when not in low latency mode
	NoticeTimeout time.Duration

	// Logging configuration
	LogLevel string
}

// DefaultSocketRoot returns $HOME/.dio/socket, or a directory below the
// system temp dir if no home directory is available
func DefaultSocketRoot() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".dio", "socket")
	}
	return filepath.Join(os.TempDir(), "dio", "socket")
}

// NewDefaultDeviceConfig returns a config with all defaults applied
func NewDefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		Root:          DefaultSocketRoot(),
		NoticeTimeout: DefaultNoticeTimeout,
		LogLevel:      "info",
	}
}

// ObserverTimeout returns the receive timeout for the master observer
func (c *DeviceConfig) ObserverTimeout() time.Duration {
	if c.LowLatency {
		return 0
	}
	return c.NoticeTimeout
}

// Validate checks the configuration for obvious mistakes
func (c *DeviceConfig) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("socket root must not be empty")
	}
	if c.NoticeTimeout < 0 {
		return fmt.Errorf("notice timeout must not be negative, got %s", c.NoticeTimeout)
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *DeviceConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("IO Device")
	addField("Name", c.Name)
	addField("Socket Root", c.Root)
	addField("Low Latency", fmt.Sprintf("%t", c.LowLatency))
	addField("Notice Timeout", fmt.Sprintf("%d ms", c.NoticeTimeout.Milliseconds()))
	addField("Observer Timeout", fmt.Sprintf("%d ms", c.ObserverTimeout().Milliseconds()))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
