// Package driving defines the interfaces that the TUI, the CLI and the MCP
// server use to drive geofind. These are the "driving" ports in hexagonal
// architecture terminology.
//
// Implementations of these interfaces live in internal/core/services.
package driving
