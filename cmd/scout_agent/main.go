// Package main provides the entry point for the talent scout search service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scout_agent",
	Short: "Talent Scout candidate search",
	Long: `Talent Scout finds candidate profiles through search engine result pages and
looks each one up in a profile data source. It runs as an HTTP API (serve) or
as a one-shot command (search).

Configuration can be loaded from a JSON file using --config. Environment
variables fill unset values, and command-line flags override both.`,
	SilenceUsage: true,
}

var (
	rootConfigPath  string
	rootVerbose     bool
	rootLogLevel    string
	rootUseBrowser  bool
	rootMaxPages    int
	rootConcurrency int
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Development logging and human-readable summaries")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.BoolVar(&rootUseBrowser, "use-browser", false, "Render every search result page in headless Chrome")
	flags.IntVar(&rootMaxPages, "max-pages", 0, "Maximum result pages per search (default 10, max 50)")
	flags.IntVar(&rootConcurrency, "concurrency", 0, "Parallel profile lookups per result page (default 1)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
