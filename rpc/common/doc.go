// Package common provides core data structures and utilities shared across
// dIO. It defines the logical addressing types, configuration structures
// and the error taxonomy used by the other packages.
//
// The package focuses on:
//   - Location, Mode and Category: the logical identity of an endpoint
//   - DeviceConfig: process wide configuration fixed at device construction
//   - Sentinel errors, wrapped with %w so callers can use errors.Is
//   - Custom logging implementation integrated with Dragonboat's logger
//
// Key Components:
//
//   - Location: Immutable (mode, category, group, name) value. The Master
//     variable holds the fixed identity of the coordinator.
//
//   - Message: Optional JSON envelope for structured events. The two byte
//     Heartbeat payload is reserved and never a real event.
//
//   - Logger: Custom logging implementation that integrates with Dragonboat's
//     logging system while providing consistent formatting across the application.
package common
