package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err, when set, is returned instead.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every request.
// Replies go through the same fence stripping and schema check as real
// providers, so tests exercise those failure paths too.
// An empty queue fails with ErrProviderUnavailable.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{queue: replies}
}

func (m *MockProvider) ModelID() string { return ProviderMock }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.queue = append(m.queue, r)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	next, ok := m.next(req)
	if err := ctx.Err(); err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, reply{text: string(next.Content), model: ProviderMock, usage: next.Usage})
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	r := m.queue[0]
	m.queue = m.queue[1:]
	return r, true
}
