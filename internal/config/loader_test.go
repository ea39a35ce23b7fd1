package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvServersPath, "")
	t.Setenv(EnvConfigPath, "")
}

func TestLoadServersJSONList(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.json", `[
		{"name": "alpha", "command": "alpha-server"},
		{"name": "beta", "url": "http://localhost:9000/mcp"}
	]`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}

	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}
	if specs[0].Name != "alpha" || specs[1].Name != "beta" {
		t.Errorf("Unexpected names: %q, %q", specs[0].Name, specs[1].Name)
	}
	if specs[0].Params["command"] != "alpha-server" {
		t.Errorf("Expected command param to survive, got %v", specs[0].Params["command"])
	}
	if _, ok := specs[0].Params["name"]; ok {
		t.Error("name should be lifted out of Params")
	}
}

func TestLoadServersMCPServersKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.json", `{
		"mcpServers": [{"name": "gamma", "command": "gamma-server"}]
	}`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "gamma" {
		t.Fatalf("Expected the mcpServers array verbatim, got %+v", specs)
	}
}

func TestLoadServersFirstKeyWins(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.json", `{
		"servers": [{"name": "from-servers"}],
		"mcpServers": [{"name": "from-mcpservers"}]
	}`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "from-servers" {
		t.Fatalf("Expected servers key to win, got %+v", specs)
	}
}

func TestLoadServersSnakeCaseKey(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.json", `{
		"mcp_servers": [{"name": "delta"}]
	}`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "delta" {
		t.Fatalf("Expected mcp_servers key to be recognized, got %+v", specs)
	}
}

func TestLoadServersYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.yaml", `
servers:
  - name: epsilon
    command: epsilon-server
    args: ["--verbose"]
    env:
      API_KEY: secret
`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("Expected 1 spec, got %d", len(specs))
	}
	if specs[0].Name != "epsilon" {
		t.Errorf("Expected name 'epsilon', got %q", specs[0].Name)
	}
	if specs[0].Params["command"] != "epsilon-server" {
		t.Errorf("Expected command param, got %v", specs[0].Params["command"])
	}
}

func TestLoadServersMissingFile(t *testing.T) {
	_, err := LoadServers(filepath.Join(t.TempDir(), "nope.json"))

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected *NotFoundError, got %v", err)
	}
}

func TestLoadServersBadShapes(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"scalar top level", "bad.json", `42`},
		{"no recognized key", "bad.json", `{"tools": []}`},
		{"key holds non-sequence", "bad.json", `{"servers": {"name": "x"}}`},
		{"entry not a mapping", "bad.json", `{"servers": ["just-a-string"]}`},
		{"malformed json", "bad.json", `{`},
		{"malformed yaml", "bad.yaml", "servers:\n\t- broken"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), test.file, test.content)

			_, err := LoadServers(path)
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("Expected *FormatError, got %v", err)
			}
		})
	}
}

func TestLoadServersUnnamedEntry(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "mcp_servers.json", `[{"command": "anon-server"}]`)

	specs, err := LoadServers(path)
	if err != nil {
		t.Fatalf("LoadServers failed: %v", err)
	}
	if specs[0].Name != UnnamedServer {
		t.Errorf("Expected placeholder name %q, got %q", UnnamedServer, specs[0].Name)
	}
}

func TestResolveExplicitPathWins(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, root, "mcp_servers.json", `[{"name": "from-candidate"}]`)
	explicit := writeConfig(t, t.TempDir(), "explicit.json", `[{"name": "from-explicit"}]`)

	specs, err := Resolve(root, explicit)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "from-explicit" {
		t.Fatalf("Expected explicit path to win, got %+v", specs)
	}
}

func TestResolveExplicitPathMissing(t *testing.T) {
	clearEnv(t)

	_, err := Resolve(t.TempDir(), filepath.Join(t.TempDir(), "gone.json"))

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected *NotFoundError for explicit missing path, got %v", err)
	}
}

func TestResolveEnvOverride(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, root, "mcp_servers.json", `[{"name": "from-candidate"}]`)
	envFile := writeConfig(t, t.TempDir(), "env.json", `[{"name": "from-env"}]`)
	t.Setenv(EnvServersPath, envFile)

	specs, err := Resolve(root, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "from-env" {
		t.Fatalf("Expected env path to win over candidates, got %+v", specs)
	}
}

func TestResolveCandidateOrder(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, root, "configs/mcp_servers.json", `[{"name": "from-configs-dir"}]`)
	writeConfig(t, root, "mcp_servers.yaml", "servers:\n  - name: from-root-yaml\n")

	specs, err := Resolve(root, "")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "from-root-yaml" {
		t.Fatalf("Expected root-level yaml to beat configs/ json, got %+v", specs)
	}
}

func TestResolveNothingFound(t *testing.T) {
	clearEnv(t)

	specs, err := Resolve(t.TempDir(), "")
	if err != nil {
		t.Fatalf("Resolve should not fail when no config exists: %v", err)
	}
	if len(specs) != 0 {
		t.Fatalf("Expected empty specs, got %+v", specs)
	}
}
