// Package logging provides leveled, structured logging for mcpconnect,
// built on the standard slog package.
//
// Every log entry carries a subsystem identifier so that output from the
// different parts of the connector (config resolution, tool aggregation,
// MCP clients) can be filtered and categorized:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Config", "Loaded %d server entries from %s", n, path)
//	logging.Warn("Connector", "MCP server %q skipped: %s", name, reason)
//	logging.Error("StdioClient", err, "Failed to initialize MCP protocol")
//
// Level filtering happens at the handler, so messages below the configured
// level cost no formatting work. The package is safe for concurrent use.
package logging
