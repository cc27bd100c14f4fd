package inngest

import (
	"net/http"
	"sync"
)

// Mock is a mock implementation of the InngestClient interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendEventFunc func(name string, data map[string]any)

	// Call records
	SendEventCalls []SendEventCall
}

// SendEventCall holds the arguments for a call to SendEvent.
type SendEventCall struct {
	Name string
	Data map[string]any
}

// NewMockClient creates a new mock instance.
func NewMockClient() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendEventCalls = nil
}

func (m *Mock) Serve() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (m *Mock) SendEvent(name string, data map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendEventCalls = append(m.SendEventCalls, SendEventCall{Name: name, Data: data})
	if m.SendEventFunc != nil {
		m.SendEventFunc(name, data)
	}
}
