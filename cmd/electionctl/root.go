package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	callerAs string
)

var rootCmd = &cobra.Command{
	Use:           "electionctl",
	Short:         "Manage elections, memberships, votes and reports",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("ELECTIONCTL_API", "http://localhost:8080"), "base URL of the electoral API")
	rootCmd.PersistentFlags().StringVar(&callerAs, "as", os.Getenv("ELECTIONCTL_AS"), "caller identity sent as X-User-Id")
}

func execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return exitCode(err)
	}
	return exitOK
}

func client() *apiClient {
	return newAPIClient(apiURL, callerAs)
}

func printJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func envOr(name string, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
