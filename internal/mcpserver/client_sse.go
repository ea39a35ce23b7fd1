package mcpserver

import (
	"context"
	"fmt"

	"mcpconnect/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

// SSEClient implements the MCPClient interface using SSE transport.
// It connects to remote MCP servers using Server-Sent Events.
type SSEClient struct {
	baseMCPClient
	url     string
	headers map[string]string
}

// NewSSEClient creates a new SSE-based MCP client with optional custom headers.
func NewSSEClient(url string, headers map[string]string) *SSEClient {
	if headers == nil {
		headers = make(map[string]string)
	}
	return &SSEClient{
		url:     url,
		headers: headers,
	}
}

// Initialize establishes the connection and performs protocol handshake
func (c *SSEClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	logging.Debug("SSEClient", "Creating SSE client for URL: %s", c.url)

	var opts []transport.ClientOption
	if len(c.headers) > 0 {
		opts = append(opts, transport.WithHeaders(c.headers))
	}

	mcpClient, err := client.NewSSEMCPClient(c.url, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SSE client: %w", err)
	}

	if err := mcpClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start SSE transport: %w", err)
	}

	initResult, err := mcpClient.Initialize(ctx, initializeRequest())
	if err != nil {
		mcpClient.Close()
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	c.client = mcpClient
	c.connected = true

	logging.Debug("SSEClient", "SSE client initialized. Server: %s, Version: %s",
		initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	return nil
}

// Close cleanly shuts down the client connection
func (c *SSEClient) Close() error {
	return c.closeClient()
}

// ListTools returns all available tools from the server
func (c *SSEClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return c.listTools(ctx)
}

// Ping checks if the server is responsive
func (c *SSEClient) Ping(ctx context.Context) error {
	return c.ping(ctx)
}
