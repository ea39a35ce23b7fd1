package cmd

import (
	"context"
	"fmt"
	"strings"

	"mcpconnect/internal/config"
	"mcpconnect/internal/mcpserver"

	"github.com/spf13/cobra"
)

// checkCmd connects to a single configured server and pings it.
var checkCmd = &cobra.Command{
	Use:   "check <server-name>",
	Short: "Check whether a configured MCP server is reachable",
	Long: `Connect to one configured MCP server, perform the protocol handshake
and ping it.

Examples:
  mcpconnect check git
  mcpconnect check everything --timeout 5s`,
	Args:                  cobra.ExactArgs(1),
	DisableFlagsInUseLine: true,
	RunE:                  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	name := args[0]

	specs, err := loadSpecs()
	if err != nil {
		return err
	}

	var known []string
	for _, spec := range specs {
		if spec.Name == name {
			return checkServer(cmd, name, spec)
		}
		known = append(known, spec.Name)
	}

	if len(known) == 0 {
		return fmt.Errorf("no MCP servers configured")
	}
	return fmt.Errorf("unknown server %q (configured: %s)", name, strings.Join(known, ", "))
}

func checkServer(cmd *cobra.Command, name string, spec config.ServerSpec) error {
	client, err := mcpserver.NewClientFromSpec(spec)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
	defer cancel()

	if err := client.Initialize(ctx); err != nil {
		return fmt.Errorf("server %q is not reachable: %w", name, err)
	}
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("server %q did not answer a ping: %w", name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "server %q is reachable\n", name)
	return nil
}
