// Package mcp provides an MCP (Model Context Protocol) server adapter for dossier.
// It lets AI assistants request person analyses and read the session history.
package mcp

import "errors"

var (
	// ErrMissingSession is returned when the session controller is not provided.
	ErrMissingSession = errors.New("mcp: session is required")

	// ErrInvalidPorts is returned when the ports are nil.
	ErrInvalidPorts = errors.New("mcp: ports are required")
)
