package mcpserver

import (
	"testing"

	"mcpconnect/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specWith(params map[string]any) config.ServerSpec {
	return config.ServerSpec{Name: "test-server", Params: params}
}

func TestNewClientFromSpec(t *testing.T) {
	tests := []struct {
		name        string
		params      map[string]any
		wantType    any
		wantErr     bool
		errContains string
	}{
		{
			name:     "explicit stdio",
			params:   map[string]any{"type": "stdio", "command": "echo", "args": []any{"hello"}},
			wantType: &StdioClient{},
		},
		{
			name:     "stdio inferred from command",
			params:   map[string]any{"command": "mcp-server-git"},
			wantType: &StdioClient{},
		},
		{
			name:     "explicit sse",
			params:   map[string]any{"type": "sse", "url": "http://example.com/sse"},
			wantType: &SSEClient{},
		},
		{
			name:     "explicit streamable-http",
			params:   map[string]any{"type": "streamable-http", "url": "http://example.com/mcp"},
			wantType: &StreamableHTTPClient{},
		},
		{
			name:     "streamable-http inferred from url",
			params:   map[string]any{"url": "http://example.com/mcp"},
			wantType: &StreamableHTTPClient{},
		},
		{
			name:        "stdio missing command",
			params:      map[string]any{"type": "stdio"},
			wantErr:     true,
			errContains: "command is required",
		},
		{
			name:        "sse missing url",
			params:      map[string]any{"type": "sse"},
			wantErr:     true,
			errContains: "url is required",
		},
		{
			name:        "streamable-http missing url",
			params:      map[string]any{"type": "streamable-http"},
			wantErr:     true,
			errContains: "url is required",
		},
		{
			name:        "unknown type",
			params:      map[string]any{"type": "carrier-pigeon", "url": "http://example.com"},
			wantErr:     true,
			errContains: "unsupported type",
		},
		{
			name:        "nothing to infer from",
			params:      map[string]any{},
			wantErr:     true,
			errContains: "either command or url is required",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, err := NewClientFromSpec(specWith(test.params))

			if test.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.errContains)
				assert.Contains(t, err.Error(), "test-server", "errors should name the server")
				return
			}

			require.NoError(t, err)
			assert.IsType(t, test.wantType, client)
		})
	}
}

func TestStringParamHelpers(t *testing.T) {
	params := map[string]any{
		"command": "server",
		"port":    8080,
		"args":    []any{"--fast", 2, nil},
		"env":     map[string]any{"KEY": "value", "RETRIES": 3},
		"headers": map[string]string{"Authorization": "Bearer x"},
	}

	assert.Equal(t, "server", stringParam(params, "command"))
	assert.Equal(t, "", stringParam(params, "port"), "non-string scalars are not coerced by stringParam")
	assert.Equal(t, "", stringParam(params, "missing"))

	assert.Equal(t, []string{"--fast", "2"}, stringSliceParam(params, "args"))
	assert.Nil(t, stringSliceParam(params, "missing"))
	assert.Nil(t, stringSliceParam(params, "command"))

	assert.Equal(t, map[string]string{"KEY": "value", "RETRIES": "3"}, stringMapParam(params, "env"))
	assert.Equal(t, map[string]string{"Authorization": "Bearer x"}, stringMapParam(params, "headers"))
	assert.Nil(t, stringMapParam(params, "missing"))
}

// Listing tools without initializing first must fail cleanly rather than
// dereference a nil client.
func TestClientsRequireInitialize(t *testing.T) {
	clients := map[string]MCPClient{
		"stdio":           NewStdioClient("echo", nil, nil),
		"sse":             NewSSEClient("http://example.com/sse", nil),
		"streamable-http": NewStreamableHTTPClient("http://example.com/mcp", nil),
	}

	for name, c := range clients {
		t.Run(name, func(t *testing.T) {
			_, err := c.ListTools(t.Context())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not connected")

			err = c.Ping(t.Context())
			require.Error(t, err)

			// Close on a never-connected client is a no-op.
			assert.NoError(t, c.Close())
		})
	}
}
