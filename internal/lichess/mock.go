package lichess

import "sync"

// MockClient is a mock implementation of the LichessClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetCreatedTournamentsFunc func(creator string, statuses ...TournamentStatus) ([]Tournament, error)
	JoinTournamentFunc        func(tournamentID string) error
	GetResultsFunc            func(tournamentID string) ([]TournamentResult, error)

	// Call records
	GetCreatedTournamentsCalls []string
	JoinTournamentCalls        []string
	GetResultsCalls            []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCreatedTournamentsCalls = nil
	m.JoinTournamentCalls = nil
	m.GetResultsCalls = nil
}

func (m *MockClient) GetCreatedTournaments(creator string, statuses ...TournamentStatus) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCreatedTournamentsCalls = append(m.GetCreatedTournamentsCalls, creator)
	if m.GetCreatedTournamentsFunc != nil {
		return m.GetCreatedTournamentsFunc(creator, statuses...)
	}
	return []Tournament{}, nil
}

func (m *MockClient) JoinTournament(tournamentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JoinTournamentCalls = append(m.JoinTournamentCalls, tournamentID)
	if m.JoinTournamentFunc != nil {
		return m.JoinTournamentFunc(tournamentID)
	}
	return nil
}

func (m *MockClient) GetResults(tournamentID string) ([]TournamentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetResultsCalls = append(m.GetResultsCalls, tournamentID)
	if m.GetResultsFunc != nil {
		return m.GetResultsFunc(tournamentID)
	}
	return []TournamentResult{}, nil
}
