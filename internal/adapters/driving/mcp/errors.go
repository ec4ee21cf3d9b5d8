// Package mcp provides an MCP (Model Context Protocol) server adapter for geofind.
// It lets AI assistants run location searches against the configured backend.
package mcp

import "errors"

// ErrMissingCoordinatorFactory is returned when no coordinator factory is provided.
var ErrMissingCoordinatorFactory = errors.New("mcp: search coordinator factory is required")
