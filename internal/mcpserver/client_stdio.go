package mcpserver

import (
	"context"
	"fmt"
	"time"

	"mcpconnect/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// DefaultStdioInitTimeout is the default timeout for stdio client
// initialization. This covers starting the subprocess and completing the
// MCP handshake when the caller's context has no deadline of its own.
const DefaultStdioInitTimeout = 10 * time.Second

// StdioClient implements the MCPClient interface using stdio transport.
// It manages a local subprocess that communicates via stdin/stdout.
type StdioClient struct {
	baseMCPClient
	command string
	args    []string
	env     map[string]string
}

// NewStdioClient creates a new stdio-based MCP client.
func NewStdioClient(command string, args []string, env map[string]string) *StdioClient {
	return &StdioClient{
		command: command,
		args:    args,
		env:     env,
	}
}

// Initialize establishes the connection and performs protocol handshake
func (c *StdioClient) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	logging.Debug("StdioClient", "Creating stdio client for command: %s %v", c.command, c.args)

	var envStrings []string
	for k, v := range c.env {
		envStrings = append(envStrings, fmt.Sprintf("%s=%s", k, v))
	}

	// Creating the client starts the subprocess; a missing executable
	// surfaces here.
	mcpClient, err := client.NewStdioMCPClient(c.command, envStrings, c.args...)
	if err != nil {
		return fmt.Errorf("failed to create stdio client: %w", err)
	}

	initCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		initCtx, cancel = context.WithTimeout(ctx, DefaultStdioInitTimeout)
		defer cancel()
	}

	initResult, err := mcpClient.Initialize(initCtx, initializeRequest())
	if err != nil {
		logging.Error("StdioClient", err, "Failed to initialize MCP protocol for %s", c.command)
		if closeErr := mcpClient.Close(); closeErr != nil {
			logging.Debug("StdioClient", "Error closing failed client for %s: %v", c.command, closeErr)
		}
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	c.client = mcpClient
	c.connected = true

	logging.Debug("StdioClient", "MCP protocol initialized for %s (server: %s %s)",
		c.command, initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	return nil
}

// Close cleanly shuts down the client connection
func (c *StdioClient) Close() error {
	return c.closeClient()
}

// ListTools returns all available tools from the server
func (c *StdioClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	return c.listTools(ctx)
}

// Ping checks if the server is responsive
func (c *StdioClient) Ping(ctx context.Context) error {
	return c.ping(ctx)
}
