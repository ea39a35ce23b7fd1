package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcpconnect/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted for an explicit config file path.
// EnvServersPath wins when both are set.
const (
	EnvServersPath = "MCP_SERVERS_PATH"
	EnvConfigPath  = "MCP_CONFIG_PATH"
)

// serverKeys are the recognized top-level keys holding the server sequence
// when the config file is a mapping. First match wins.
var serverKeys = []string{"servers", "mcpServers", "mcp_servers"}

// candidatePaths are the relative locations probed under the root directory
// when no explicit path is given, in priority order.
var candidatePaths = []string{
	"mcp_servers.json",
	"mcp_servers.yaml",
	"mcp_servers.yml",
	"configs/mcp_servers.json",
	"configs/mcp_servers.yaml",
	"configs/mcp_servers.yml",
	"config/mcp_servers.json",
	"config/mcp_servers.yaml",
	"config/mcp_servers.yml",
}

// Resolve loads server specs for the given root directory. An explicit path
// (flag, or one of the environment variables) must exist and parse, otherwise
// the error is returned to the caller. Without an explicit path the candidate
// locations under root are probed; if none exists the result is an empty
// list, not an error.
func Resolve(root, explicitPath string) ([]ServerSpec, error) {
	if explicitPath != "" {
		return LoadServers(explicitPath)
	}

	if envPath := os.Getenv(EnvServersPath); envPath != "" {
		return LoadServers(envPath)
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return LoadServers(envPath)
	}

	for _, rel := range candidatePaths {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err == nil {
			return LoadServers(path)
		}
	}

	logging.Warn("Config", "No MCP servers config found under %s. Set %s or add mcp_servers.json under the root, configs/ or config/ directory.", root, EnvServersPath)
	return nil, nil
}

// LoadServers reads and decodes a single config file. A missing file yields
// a *NotFoundError, malformed contents a *FormatError.
func LoadServers(path string) ([]ServerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading MCP servers config %s: %w", path, err)
	}

	specs, err := decodeServers(path, data)
	if err != nil {
		return nil, err
	}

	logging.Info("Config", "Loaded MCP servers config from %s (%d servers)", path, len(specs))
	return specs, nil
}

func decodeServers(path string, data []byte) ([]ServerSpec, error) {
	var doc any
	if isYAMLPath(path) {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &FormatError{Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &FormatError{Path: path, Message: fmt.Sprintf("parsing JSON: %v", err)}
		}
	}

	switch v := doc.(type) {
	case []any:
		return specsFromList(path, v)
	case map[string]any:
		for _, key := range serverKeys {
			raw, ok := v[key]
			if !ok || raw == nil {
				continue
			}
			list, ok := raw.([]any)
			if !ok {
				return nil, &FormatError{Path: path, Message: fmt.Sprintf("%q must be a sequence", key)}
			}
			return specsFromList(path, list)
		}
		return nil, &FormatError{Path: path, Message: fmt.Sprintf("no server list found (expected one of: %s)", strings.Join(serverKeys, ", "))}
	default:
		return nil, &FormatError{Path: path, Message: "top level must be a sequence or a mapping"}
	}
}

func specsFromList(path string, list []any) ([]ServerSpec, error) {
	specs := make([]ServerSpec, 0, len(list))
	for i, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, &FormatError{Path: path, Message: fmt.Sprintf("server entry %d is not a mapping", i)}
		}
		specs = append(specs, specFromRecord(record))
	}
	return specs, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
