// Package connector aggregates tools from multiple MCP servers.
//
// A Connector owns an ordered list of server specs and an injected
// SourceFactory. On first use it asks every server for its tools in
// parallel, each call bounded by a timeout, and merges the successful
// results into one list ordered by spec position. A server that cannot be
// reached, times out, or fails in any other way is recorded as a Skip and
// the aggregation carries on; the pass as a whole never fails.
//
// The merged list is computed at most once per Connector instance, even
// under concurrent first callers, and even when the pass recorded skips.
// Callers that want a fresh view create a new Connector.
package connector
