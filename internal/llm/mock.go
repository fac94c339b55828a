package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for MockProvider. Either Content or Err is set.
type MockResponse struct {
	Content string
	Err     error
}

// MockProvider replays canned responses in order and records requests.
// It needs no network and is selected by the "mock" provider name.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider creates a MockProvider queued with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, &Error{Kind: KindUnavailable}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finishResponse(req, &Response{
		Content:    []byte(next.Content),
		Model:      "mock",
		StopReason: "end",
	})
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Enqueue appends responses to the queue.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
