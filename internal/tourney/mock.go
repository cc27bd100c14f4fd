package tourney

import (
	"sync"
)

// MockStore is a mock implementation of the TourneyStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	LoadMarkerFunc     func() (Marker, error)
	SaveMarkerFunc     func(marker Marker) error
	UpsertStatsFunc    func(stats []*PlayerStats) error
	GetStatsFunc       func() ([]PlayerStats, error)
	GetPlayerStatsFunc func(username string) (*PlayerStats, error)
	ClearFunc          func() error

	// Call records
	LoadMarkerCalls     int
	SaveMarkerCalls     []Marker
	UpsertStatsCalls    [][]*PlayerStats
	GetPlayerStatsCalls []string
	ClearCalls          int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadMarkerCalls = 0
	m.SaveMarkerCalls = nil
	m.UpsertStatsCalls = nil
	m.GetPlayerStatsCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) LoadMarker() (Marker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadMarkerCalls++
	if m.LoadMarkerFunc != nil {
		return m.LoadMarkerFunc()
	}
	return Marker{}, nil
}

func (m *MockStore) SaveMarker(marker Marker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMarkerCalls = append(m.SaveMarkerCalls, marker)
	if m.SaveMarkerFunc != nil {
		return m.SaveMarkerFunc(marker)
	}
	return nil
}

func (m *MockStore) UpsertStats(stats []*PlayerStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertStatsCalls = append(m.UpsertStatsCalls, stats)
	if m.UpsertStatsFunc != nil {
		return m.UpsertStatsFunc(stats)
	}
	return nil
}

func (m *MockStore) GetStats() ([]PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayerStats(username string) (*PlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerStatsCalls = append(m.GetPlayerStatsCalls, username)
	if m.GetPlayerStatsFunc != nil {
		return m.GetPlayerStatsFunc(username)
	}
	return nil, nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
