// Package mcpserver provides the MCP client implementations behind the
// connector's tool sources.
//
// Three transports are supported, all built on mark3labs/mcp-go:
//
//   - StdioClient: a local subprocess speaking MCP over stdin/stdout
//   - SSEClient: a remote server speaking MCP over Server-Sent Events
//   - StreamableHTTPClient: a remote server speaking streamable HTTP
//
// NewClientFromSpec picks the transport from a server spec's parameters and
// NewSource wraps the result as a connector.ToolSource, which is how the
// rest of the application consumes this package.
package mcpserver
