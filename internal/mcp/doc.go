// Package mcp exposes the alignd command façade as MCP tools.
//
// One tool exists per façade operation; this tool set is the fixed command
// contract the presentation layer consumes. Tools call the façade directly,
// with no transport indirection, and every invocation is counted and timed
// for the metrics endpoint.
package mcp
