// Package server implements the MCP (Model Context Protocol) server for
// logo matching tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the matching
// pipeline through the MCP protocol, so MCP-compatible clients can match
// logo images against detected regions of larger scenes.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Matching:
//   - logo_match: Match logos against candidate regions of a base image
//   - logo_cutoffs: Estimate per-logo cutoffs against the background bank
//
// Feature Extraction:
//   - logo_embed: Report embedding count and dimensionality for images
//
// Feature Banks:
//   - bank_build: Build a background feature bank from images
//   - bank_info: Inspect a bank file
//
// Text Readout:
//   - match_read_text: OCR text from matched candidate regions
//
// # Server State
//
// The server keeps two caches for the lifetime of the process: decoded
// images keyed by path, and memory-mapped feature banks keyed by path.
// Both serve concurrent readers; the match pipeline itself is stateless
// between requests.
//
// Because stdout carries the protocol, all logging goes to stderr.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg, log, extractor)
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
