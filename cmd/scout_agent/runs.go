package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonathan/talent-scout/internal/db"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent search runs",
	Long:  "Lists the most recent recorded search runs, newest first. Requires DATABASE_URL.",
	RunE:  runListRuns,
}

var (
	runsLimit int
)

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Number of runs to list")
	rootCmd.AddCommand(runsCmd)
}

func runListRuns(cmd *cobra.Command, _ []string) error {
	if runsLimit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
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

	runs, err := database.ListSearchRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	return printRuns(cmd.OutOrStdout(), runs)
}

// printRuns renders the runs as a table, newest first as listed.
func printRuns(w io.Writer, runs []db.SearchRun) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No search runs recorded")
		return err
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Flag", "Status", "Results", "Position", "Created"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID.String(),
			run.Flag,
			run.Status,
			run.ResultCount,
			run.Position,
			run.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
