package connector

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"mcpconnect/internal/config"
	"mcpconnect/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds each per-server tool listing call.
const DefaultTimeout = 10 * time.Second

// ToolSource lists the tools one MCP server exposes. The connector treats
// the returned tools as opaque handles; it never inspects them.
type ToolSource interface {
	ListTools(ctx context.Context) ([]mcp.Tool, error)
}

// SourceFactory builds a ToolSource for one server spec. Construction may
// fail synchronously (bad parameters, missing executable); such failures are
// recorded as skips like any other per-server error.
//
// A returned source that also implements io.Closer is closed after its
// listing call.
type SourceFactory func(spec config.ServerSpec) (ToolSource, error)

// ServerTool pairs one aggregated tool with the name of the server that
// exposes it.
type ServerTool struct {
	Server string   `json:"server"`
	Tool   mcp.Tool `json:"tool"`
}

// Connector aggregates the tools of all configured MCP servers into one
// ordered list. The list is computed once per Connector instance on first
// use and cached; servers that fail are skipped, never fatal.
type Connector struct {
	specs   []config.ServerSpec
	timeout time.Duration
	factory SourceFactory

	group singleflight.Group

	mu      sync.RWMutex
	loaded  bool
	entries []ServerTool
	skips   []Skip
}

// Option configures a Connector.
type Option func(*Connector)

// WithTimeout sets the per-server listing timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a Connector over the given server specs. The specs slice is
// copied; the caller cannot change the descriptor order afterwards.
func New(specs []config.ServerSpec, factory SourceFactory, opts ...Option) *Connector {
	c := &Connector{
		specs:   slices.Clone(specs),
		timeout: DefaultTimeout,
		factory: factory,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tools returns the aggregated tool list, loading it on first call. The
// returned slice is a copy; callers cannot mutate the cache through it.
func (c *Connector) Tools(ctx context.Context) []mcp.Tool {
	c.ensureLoaded(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	tools := make([]mcp.Tool, len(c.entries))
	for i, entry := range c.entries {
		tools[i] = entry.Tool
	}
	return tools
}

// ServerTools returns the aggregated tools together with their origin
// server, in the same order as Tools. The result is a copy.
func (c *Connector) ServerTools(ctx context.Context) []ServerTool {
	c.ensureLoaded(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// Skipped returns the skip records from the load pass, loading first if
// needed. Like Tools, the result is a copy.
func (c *Connector) Skipped(ctx context.Context) []Skip {
	c.ensureLoaded(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.skips)
}

// ensureLoaded runs the aggregation pass at most once per Connector
// instance. Concurrent first callers collapse into a single pass via
// singleflight; a pass with skips still counts as loaded and is not retried.
func (c *Connector) ensureLoaded(ctx context.Context) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return
	}

	c.group.Do("load", func() (any, error) {
		// Double-check after acquiring the singleflight slot: a previous
		// Do call may have completed between our fast path and here.
		c.mu.RLock()
		loaded := c.loaded
		c.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		entries, skips := c.loadAll(ctx)

		c.mu.Lock()
		c.entries = entries
		c.skips = skips
		c.loaded = true
		c.mu.Unlock()
		return nil, nil
	})
}

type outcome struct {
	tools []mcp.Tool
	skip  *Skip
}

// loadAll queries every server in parallel. Results are slotted by spec
// index so the merged list always follows descriptor order, never
// completion order.
func (c *Connector) loadAll(ctx context.Context) ([]ServerTool, []Skip) {
	results := make([]outcome, len(c.specs))

	var wg sync.WaitGroup
	for i, spec := range c.specs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.loadOne(ctx, spec)
		}()
	}
	wg.Wait()

	var entries []ServerTool
	var skips []Skip
	for i, res := range results {
		if res.skip != nil {
			skips = append(skips, *res.skip)
			logging.Warn("Connector", "Skipping MCP server %q (%s)", res.skip.Server, res.skip.Detail)
			continue
		}
		for _, tool := range res.tools {
			entries = append(entries, ServerTool{Server: c.specs[i].Name, Tool: tool})
		}
		logging.Info("Connector", "Loaded %d tools from MCP server %q", len(res.tools), c.specs[i].Name)
	}

	if len(skips) > 0 {
		reasons := make([]string, len(skips))
		for i, s := range skips {
			reasons[i] = s.String()
		}
		logging.Warn("Connector", "MCP servers skipped (%d):\n- %s", len(skips), strings.Join(reasons, "\n- "))
	}

	return entries, skips
}

func (c *Connector) loadOne(ctx context.Context, spec config.ServerSpec) outcome {
	source, err := c.factory(spec)
	if err != nil {
		skip := classify(spec.Name, err, c.timeout)
		return outcome{skip: &skip}
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	listCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tools, err := source.ListTools(listCtx)
	if err != nil {
		// The source may wrap or swallow the context error; the deadline
		// having fired is authoritative either way.
		if errors.Is(listCtx.Err(), context.DeadlineExceeded) {
			err = context.DeadlineExceeded
		}
		skip := classify(spec.Name, err, c.timeout)
		return outcome{skip: &skip}
	}

	return outcome{tools: tools}
}
