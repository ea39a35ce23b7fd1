package mcpserver

import (
	"fmt"

	"mcpconnect/internal/config"
)

// Server types accepted in the "type" parameter.
const (
	TypeStdio          = "stdio"
	TypeSSE            = "sse"
	TypeStreamableHTTP = "streamable-http"
)

// NewClientFromSpec creates the appropriate MCP client for one server spec.
// An explicit "type" parameter wins; without one the transport is inferred
// from the parameters present ("command" means stdio, "url" means
// streamable-http).
//
// Returns an error when the spec names an unknown type or lacks the
// parameter its transport requires.
func NewClientFromSpec(spec config.ServerSpec) (MCPClient, error) {
	command := stringParam(spec.Params, "command")
	url := stringParam(spec.Params, "url")

	serverType := stringParam(spec.Params, "type")
	if serverType == "" {
		switch {
		case command != "":
			serverType = TypeStdio
		case url != "":
			serverType = TypeStreamableHTTP
		default:
			return nil, fmt.Errorf("server %q: either command or url is required", spec.Name)
		}
	}

	switch serverType {
	case TypeStdio:
		if command == "" {
			return nil, fmt.Errorf("server %q: command is required for stdio type", spec.Name)
		}
		return NewStdioClient(command, stringSliceParam(spec.Params, "args"), stringMapParam(spec.Params, "env")), nil

	case TypeSSE:
		if url == "" {
			return nil, fmt.Errorf("server %q: url is required for sse type", spec.Name)
		}
		return NewSSEClient(url, stringMapParam(spec.Params, "headers")), nil

	case TypeStreamableHTTP:
		if url == "" {
			return nil, fmt.Errorf("server %q: url is required for streamable-http type", spec.Name)
		}
		return NewStreamableHTTPClient(url, stringMapParam(spec.Params, "headers")), nil

	default:
		return nil, fmt.Errorf("server %q: unsupported type %q (supported: %s, %s, %s)",
			spec.Name, serverType, TypeStdio, TypeSSE, TypeStreamableHTTP)
	}
}

// stringParam reads a string-valued parameter; anything else yields "".
func stringParam(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

// stringSliceParam reads a parameter holding a list of strings. Config
// decoding produces []any, so each element is converted individually;
// non-string scalars are stringified, anything else is dropped.
func stringSliceParam(params map[string]any, key string) []string {
	raw, ok := params[key]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			} else if item != nil {
				result = append(result, fmt.Sprintf("%v", item))
			}
		}
		return result
	default:
		return nil
	}
}

// stringMapParam reads a parameter holding a string-to-string mapping, with
// the same tolerance as stringSliceParam for scalar values.
func stringMapParam(params map[string]any, key string) map[string]string {
	raw, ok := params[key]
	if !ok {
		return nil
	}

	switch v := raw.(type) {
	case map[string]string:
		return v
	case map[string]any:
		result := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				result[k] = s
			} else if item != nil {
				result[k] = fmt.Sprintf("%v", item)
			}
		}
		return result
	default:
		return nil
	}
}
