package mcpserver

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// MCPClient is the transport-agnostic view of one MCP server connection.
// All transport types (stdio, SSE, streamable-http) implement it, enabling
// polymorphic usage and easier testing with mocks.
type MCPClient interface {
	// Initialize establishes the connection and performs protocol handshake
	Initialize(ctx context.Context) error
	// Close cleanly shuts down the client connection
	Close() error
	// ListTools returns all available tools from the server
	ListTools(ctx context.Context) ([]mcp.Tool, error)
	// Ping checks if the server is responsive
	Ping(ctx context.Context) error
}

// Compile-time interface compliance checks
var (
	_ MCPClient = (*StdioClient)(nil)
	_ MCPClient = (*SSEClient)(nil)
	_ MCPClient = (*StreamableHTTPClient)(nil)
)

// baseMCPClient provides the shared MCP protocol operations that are
// identical across transport types.
type baseMCPClient struct {
	client    client.MCPClient
	mu        sync.RWMutex
	connected bool
}

// checkConnected verifies the client is connected and returns an error if
// not. Caller must hold at least a read lock on mu.
func (b *baseMCPClient) checkConnected() error {
	if !b.connected || b.client == nil {
		return fmt.Errorf("client not connected")
	}
	return nil
}

// closeClient performs the common close logic
func (b *baseMCPClient) closeClient() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.connected || b.client == nil {
		return nil
	}

	err := b.client.Close()
	b.connected = false
	b.client = nil

	return err
}

func (b *baseMCPClient) listTools(ctx context.Context) ([]mcp.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkConnected(); err != nil {
		return nil, err
	}

	result, err := b.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return result.Tools, nil
}

func (b *baseMCPClient) ping(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkConnected(); err != nil {
		return err
	}

	return b.client.Ping(ctx)
}

// initializeRequest builds the handshake request shared by all transports.
func initializeRequest() mcp.InitializeRequest {
	return mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "mcpconnect",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}
}
