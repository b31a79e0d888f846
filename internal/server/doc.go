// Package server implements the MCP (Model Context Protocol) server for the
// pixel editing tools.
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
//   - image_load: Load image and get metadata
//
// Color Operations:
//   - image_sample_color: Get color at pixel as hex, RGBA, XYZ and HunterLab
//   - image_sample_colors_multi: Sample multiple points
//   - color_to_hunterlab: Convert an sRGB color
//   - hunterlab_to_color: Convert a HunterLab value back to sRGB
//
// Editing Operations:
//   - image_recolor: Threshold recolor over the image, a rectangle or a polygon
//   - image_dither: Binary or palette error-diffusion dithering
//
// Edits run on a private buffer in the requested pixel format and return a
// base64 PNG; the source file and its cached decode are never modified.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed params) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.Config{Workers: 4})
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
