package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	dryRun bool
)

func init() {
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would happen without joining or saving anything")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(markerCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Trigger a poll cycle: join new tournaments and ingest finished ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/check"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <tournamentID>",
	Short: "Ingest the final standings of a specific tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/ingest?tournamentID=" + url.QueryEscape(args[0]))
	},
}

var markerCmd = &cobra.Command{
	Use:   "marker",
	Short: "Show the currently tracked tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/marker")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the tournament leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var playerCmd = &cobra.Command{
	Use:   "player <username>",
	Short: "Show the stats for a single player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats/player?username=" + url.QueryEscape(args[0]))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the player stats as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats/export")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all stats and reset the tournament marker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
