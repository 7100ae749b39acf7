package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var purgeCacheCmd = &cobra.Command{
	Use:   "purge-cache",
	Short: "Delete cached profiles older than the cache TTL",
	Long:  "Deletes profile cache rows fetched longer ago than --older-than (default: profile_cache_ttl). Requires DATABASE_URL.",
	RunE:  runPurgeCache,
}

var (
	purgeCacheOlderThan time.Duration
)

func init() {
	purgeCacheCmd.Flags().DurationVar(&purgeCacheOlderThan, "older-than", 0, "Age past which cached profiles are deleted (default: profile_cache_ttl)")
	rootCmd.AddCommand(purgeCacheCmd)
}

func runPurgeCache(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	maxAge := cfg.CacheTTL()
	if cmd.Flags().Changed("older-than") {
		maxAge = purgeCacheOlderThan
	}
	if maxAge <= 0 {
		return fmt.Errorf("--older-than must be positive")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	database, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	removed, err := database.PurgeStaleProfiles(ctx, maxAge)
	if err != nil {
		return err
	}

	logger.Info("profile cache purged", zap.Int64("removed", removed), zap.Duration("older_than", maxAge))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached profiles older than %s\n", removed, maxAge)
	return nil
}
