// Package server implements the MCP (Model Context Protocol) server for content
// box detection on scanned pages.
//
// This package provides a JSON-RPC 2.0 server that exposes the content box
// search through the MCP protocol, so that MCP clients can locate the printed
// area of a page before cropping, OCR or layout analysis.
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
// Basic Image Information:
//   - image_load: Load a page and get metadata
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - image_crop: Extract rectangular region
//   - image_binarize: Preview the black and white rendering
//
// Content Box:
//   - image_content_box: Find the content box
//   - image_crop_content: Crop the page to its content box
//   - image_content_overlay: Outline the content box on the page
//
// Content box tools take the scan resolution (dpi) and the binarization level
// (threshold). Missing values fall back to the configured default density and
// to Otsu's level for the page.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: "Tool execution failed", or "Tool execution cancelled" when a
//     search hit its deadline or the server is shutting down
//   - data: Additional error details (typically the Go error string)
//
// A page without content is not an error: image_content_box reports
// found=false.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	cfg, _ := config.Load(".env")
//	srv := server.New(cfg, logging.NewLogger("content-box", cfg.Level()))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
