package notifier

import (
	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/tourney"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For freshly joined tournaments
	SendJoinNotification(tournament *lichess.Tournament, dryRun bool) error
	// For ingested final standings
	SendResultsNotification(tournamentID string, results []lichess.TournamentResult, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(stats []tourney.PlayerStats) (any, error)
	FormatPlayerStatsResponse(stats *tourney.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
