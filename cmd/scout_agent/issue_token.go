package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-scout/internal/config"
	"github.com/jonathan/talent-scout/internal/server"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an API bearer token for a client",
	Long:  "Signs a bearer token for the given client ID with AUTH_JWT_SECRET. The token is valid for AUTH_JWT_EXPIRATION_HOURS (default 720).",
	RunE:  runIssueToken,
}

var (
	issueTokenClientID string
)

func init() {
	issueTokenCmd.Flags().StringVar(&issueTokenClientID, "client-id", "", "Client identifier embedded in the token (required)")

	if err := issueTokenCmd.MarkFlagRequired("client-id"); err != nil {
		panic(fmt.Sprintf("failed to mark client-id flag as required: %v", err))
	}

	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(issueTokenClientID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
