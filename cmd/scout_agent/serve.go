package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/config"
	"github.com/jonathan/talent-scout/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing POST /get-candidate, GET /runs/{id} and GET /health.

Requires PROFILE_API_URL. DATABASE_URL enables the profile cache and search run
history. AUTH_JWT_SECRET enables bearer-token authentication.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080, or PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig == nil {
		logger.Warn("AUTH_JWT_SECRET not set; API authentication disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer comps.Close()

	srvCfg := server.Config{
		Port:     cfg.Port,
		Searcher: comps.crawler,
		JWT:      jwtConfig,
		Logger:   logger,
	}
	if comps.database != nil {
		srvCfg.Runs = comps.database
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.Int("max_pages", cfg.MaxPages),
		zap.Int("concurrency", cfg.Concurrency),
		zap.Bool("use_browser", cfg.UseBrowser),
		zap.Bool("database", comps.database != nil),
	)

	return srv.Start(ctx)
}
