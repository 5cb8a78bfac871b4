package common

import "errors"

// --------------------------------------------------------------------------
// Error taxonomy
// --------------------------------------------------------------------------

var (
	// ErrAddressResolution is returned for a malformed location or protocol
	ErrAddressResolution = errors.New("address resolution failed")

	// ErrConnection is returned when a socket cannot be opened, bound or connected
	ErrConnection = errors.New("connection failed")

	// ErrProtocolMisuse is returned when a passive publisher is asked to publish
	ErrProtocolMisuse = errors.New("protocol misuse")

	// ErrTimeout is returned by a socket when its receive deadline expired
	ErrTimeout = errors.New("receive timed out")

	// ErrTransport is returned when a send or receive fails on an established socket
	ErrTransport = errors.New("transport error")
)
