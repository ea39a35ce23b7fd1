package mcpserver

import (
	"context"
	"fmt"

	"mcpconnect/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// StreamableHTTPClient implements the MCPClient interface using the
// streamable-http transport.
type StreamableHTTPClient struct {
	baseMCPClient
	url     string
	headers map[string]string
}

// NewStreamableHTTPClient creates a new streamable-http MCP client with
// optional custom headers.
func NewStreamableHTTPClient(url string, headers map[string]string) *StreamableHTTPClient {
	if headers == nil {
		headers = make(map[string]string)
	}
	return &StreamableHTTPClient{
		url:     url,
		headers: headers,
	}
}

// Initialize establishes the connection and performs protocol handshake
func (c *StreamableHTTPClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	logging.Debug("StreamableHTTPClient", "Creating streamable-http client for URL: %s", c.url)

	var opts []transport.StreamableHTTPCOption
	if len(c.headers) > 0 {
		opts = append(opts, transport.WithHTTPHeaders(c.headers))
	}

	mcpClient, err := client.NewStreamableHttpClient(c.url, opts...)
	if err != nil {
		return fmt.Errorf("failed to create streamable-http client: %w", err)
	}

	initResult, err := mcpClient.Initialize(ctx, initializeRequest())
	if err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	c.client = mcpClient
	c.connected = true

	logging.Debug("StreamableHTTPClient", "Streamable-http client initialized. Server: %s, Version: %s",
		initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	return nil
}

// Close cleanly shuts down the client connection
func (c *StreamableHTTPClient) Close() error {
	return c.closeClient()
}

// ListTools returns all available tools from the server
func (c *StreamableHTTPClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return c.listTools(ctx)
}

// Ping checks if the server is responsive
func (c *StreamableHTTPClient) Ping(ctx context.Context) error {
	return c.ping(ctx)
}
