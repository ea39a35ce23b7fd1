package config

import "fmt"

// NotFoundError reports that an explicitly requested config file is absent.
// Missing files during candidate-path discovery are not an error; only an
// explicit path (flag or environment variable) that points nowhere is.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("MCP servers config not found: %s", e.Path)
}

// FormatError reports a config file whose contents do not have the expected
// shape: unparseable payload, a top level that is neither a sequence nor a
// mapping with a recognized servers key, or a recognized key holding the
// wrong type.
type FormatError struct {
	Path    string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid MCP servers config %s: %s", e.Path, e.Message)
}
