// Package cmd implements the command-line interface of dIO. It provides a
// hierarchical command structure to inspect the address scheme and to talk
// to master as a client io device.
//
// The package is organized into several subpackages:
//
//   - client: Commands run through a client device (notify, publish, request, watch)
//   - url: Prints the bind and connect urls of a location
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dio -help for a list of all commands.
package cmd
