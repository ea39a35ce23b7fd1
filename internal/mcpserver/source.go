package mcpserver

import (
	"context"

	"mcpconnect/internal/config"
	"mcpconnect/internal/connector"

	"github.com/mark3labs/mcp-go/mcp"
)

// Source adapts an MCPClient to the connector's ToolSource. Each listing
// call establishes the connection, performs the handshake and lists the
// tools; the connector closes the source afterwards.
type Source struct {
	client MCPClient
}

// NewSource is the default connector.SourceFactory over the real MCP
// transports.
func NewSource(spec config.ServerSpec) (connector.ToolSource, error) {
	client, err := NewClientFromSpec(spec)
	if err != nil {
		return nil, err
	}
	return &Source{client: client}, nil
}

// Compile-time check that NewSource satisfies the factory signature.
var _ connector.SourceFactory = NewSource

func (s *Source) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	if err := s.client.Initialize(ctx); err != nil {
		return nil, err
	}
	return s.client.ListTools(ctx)
}

func (s *Source) Close() error {
	return s.client.Close()
}
