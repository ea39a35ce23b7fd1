package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"mcpconnect/internal/connector"
	"mcpconnect/internal/mcpserver"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var listOutputFormat string

// listCmd aggregates and prints the tools of every configured server.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"tools"},
	Short:   "List the tools of all configured MCP servers",
	Long: `Query every configured MCP server for its tools and print the merged
list. Servers that cannot be reached are reported as skipped below the
results.

Examples:
  mcpconnect list
  mcpconnect list -o json
  mcpconnect list --config ./mcp_servers.yaml --timeout 5s`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	if listOutputFormat != "table" && listOutputFormat != "json" {
		return fmt.Errorf("unknown output format %q (supported: table, json)", listOutputFormat)
	}

	specs, err := loadSpecs()
	if err != nil {
		return err
	}

	conn := connector.New(specs, mcpserver.NewSource, connector.WithTimeout(flagTimeout))

	var s *spinner.Spinner
	if !flagQuiet && listOutputFormat == "table" {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " Listing tools from MCP servers..."
		s.Start()
	}

	tools := conn.ServerTools(cmd.Context())
	skips := conn.Skipped(cmd.Context())

	if s != nil {
		s.Stop()
	}

	if listOutputFormat == "json" {
		return printJSON(cmd, tools, skips)
	}

	printToolsTable(cmd, tools)
	printSkips(cmd, skips)
	return nil
}

func printJSON(cmd *cobra.Command, tools []connector.ServerTool, skips []connector.Skip) error {
	out := struct {
		Tools   []connector.ServerTool `json:"tools"`
		Skipped []connector.Skip       `json:"skipped,omitempty"`
	}{
		Tools:   tools,
		Skipped: skips,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printToolsTable(cmd *cobra.Command, tools []connector.ServerTool) {
	if len(tools) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), text.FgYellow.Sprint("No tools found"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("TOOL"),
		text.FgHiCyan.Sprint("DESCRIPTION"),
		text.FgHiCyan.Sprint("SERVER"),
	})

	for _, entry := range tools {
		t.AppendRow(table.Row{entry.Tool.Name, truncate(entry.Tool.Description, 100), entry.Server})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "%d tools\n", len(tools))
}

// truncate shortens s to at most max runes, ending in "..." when cut.
// Rune-based so a multi-byte character is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func printSkips(cmd *cobra.Command, skips []connector.Skip) {
	if len(skips) == 0 {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", text.FgYellow.Sprintf("Skipped servers (%d):", len(skips)))
	for _, skip := range skips {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", skip)
	}
}
