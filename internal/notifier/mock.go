package notifier

import (
	"sync"

	"github.com/darkonteams/tourneybot/internal/lichess"
	"github.com/darkonteams/tourneybot/internal/tourney"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendJoinNotificationFunc    func(tournament *lichess.Tournament, dryRun bool) error
	SendResultsNotificationFunc func(tournamentID string, results []lichess.TournamentResult, dryRun bool) error

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(stats []tourney.PlayerStats) (any, error)
	FormatPlayerStatsResponseFunc    func(stats *tourney.PlayerStats, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records
	SendJoinNotificationCalls    []*lichess.Tournament
	SendResultsNotificationCalls []struct {
		TournamentID string
		Results      []lichess.TournamentResult
	}
	FormatLeaderboardResponseCalls [][]tourney.PlayerStats
	FormatPlayerStatsResponseCalls []struct {
		Stats *tourney.PlayerStats
		Query string
	}
	FormatPlayerNotFoundResponseCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendJoinNotificationCalls = nil
	m.SendResultsNotificationCalls = nil
	m.FormatLeaderboardResponseCalls = nil
	m.FormatPlayerStatsResponseCalls = nil
	m.FormatPlayerNotFoundResponseCalls = nil
}

func (m *Mock) SendJoinNotification(tournament *lichess.Tournament, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendJoinNotificationCalls = append(m.SendJoinNotificationCalls, tournament)
	if m.SendJoinNotificationFunc != nil {
		return m.SendJoinNotificationFunc(tournament, dryRun)
	}
	return nil
}

func (m *Mock) SendResultsNotification(tournamentID string, results []lichess.TournamentResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultsNotificationCalls = append(m.SendResultsNotificationCalls, struct {
		TournamentID string
		Results      []lichess.TournamentResult
	}{tournamentID, results})
	if m.SendResultsNotificationFunc != nil {
		return m.SendResultsNotificationFunc(tournamentID, results, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(stats []tourney.PlayerStats) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatLeaderboardResponseCalls = append(m.FormatLeaderboardResponseCalls, stats)
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(stats)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(stats *tourney.PlayerStats, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerStatsResponseCalls = append(m.FormatPlayerStatsResponseCalls, struct {
		Stats *tourney.PlayerStats
		Query string
	}{stats, query})
	if m.FormatPlayerStatsResponseFunc != nil {
		return m.FormatPlayerStatsResponseFunc(stats, query)
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundResponseCalls = append(m.FormatPlayerNotFoundResponseCalls, query)
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
