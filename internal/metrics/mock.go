package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	pollRuns          int
	tournamentsJoined int
	joinFailures      int
	resultsIngested   int
	ingestFailures    int
	pollDurations     []float64
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pollDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPollRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollRuns++
}

func (m *Mock) IncTournamentsJoined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsJoined++
}

func (m *Mock) IncJoinFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinFailures++
}

func (m *Mock) IncResultsIngested() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsIngested++
}

func (m *Mock) IncIngestFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ingestFailures++
}

func (m *Mock) ObservePollDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollDurations = append(m.pollDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PollRuns returns the number of times IncPollRuns was called.
func (m *Mock) PollRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollRuns
}

// TournamentsJoined returns the number of times IncTournamentsJoined was called.
func (m *Mock) TournamentsJoined() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsJoined
}

// JoinFailures returns the number of times IncJoinFailures was called.
func (m *Mock) JoinFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinFailures
}

// ResultsIngested returns the number of times IncResultsIngested was called.
func (m *Mock) ResultsIngested() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsIngested
}

// IngestFailures returns the number of times IncIngestFailures was called.
func (m *Mock) IngestFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ingestFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
