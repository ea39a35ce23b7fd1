package cmd

import (
	"os"
	"time"

	"mcpconnect/internal/config"
	"mcpconnect/internal/connector"
	"mcpconnect/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagRoot     string
	flagTimeout  time.Duration
	flagLogLevel string
	flagQuiet    bool
)

// rootCmd represents the base command for the mcpconnect application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcpconnect",
	Short: "Aggregate tools from configured MCP servers",
	Long: `mcpconnect reads a list of MCP server entries from a config file
(mcp_servers.json/yaml, or the path in MCP_SERVERS_PATH) and queries every
server for the tools it exposes, merging the results into one list. Servers
that are down, missing, or slow are skipped and reported, never fatal.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitForCLI(logging.ParseLevel(flagLogLevel), os.Stderr)
	},
}

// SetVersion sets the version for the root command. This is typically called
// from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcpconnect version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSpecs resolves the configured server list for the current flags.
func loadSpecs() ([]config.ServerSpec, error) {
	return config.Resolve(flagRoot, flagConfig)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to an MCP servers config file (overrides discovery)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "directory searched for mcp_servers.{json,yaml,yml}")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", connector.DefaultTimeout, "per-server timeout for listing tools")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(newVersionCmd())
}
