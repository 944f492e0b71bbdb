// Package apiclienttest содержит тестовую реализацию apiclient.Client.
package apiclienttest

import (
	"context"
	"sync"

	"github.com/Kargones/boxing-smoke/internal/apiclient"
)

// MockClient реализует apiclient.Client через функцию DoFunc и запоминает запросы.
type MockClient struct {
	DoFunc func(ctx context.Context, req apiclient.Request) (*apiclient.Response, error)

	mu    sync.Mutex
	calls []apiclient.Request
}

// NewMockClient создаёт MockClient, отвечающий на все запросы телом body.
func NewMockClient(body string) *MockClient {
	return &MockClient{
		DoFunc: func(_ context.Context, _ apiclient.Request) (*apiclient.Response, error) {
			return &apiclient.Response{StatusCode: 200, Body: []byte(body)}, nil
		},
	}
}

// Do записывает запрос и делегирует DoFunc.
func (m *MockClient) Do(ctx context.Context, req apiclient.Request) (*apiclient.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.DoFunc == nil {
		return &apiclient.Response{StatusCode: 200, Body: []byte(`{"status": "success"}`)}, nil
	}
	return m.DoFunc(ctx, req)
}

// Calls возвращает копию записанных запросов.
func (m *MockClient) Calls() []apiclient.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]apiclient.Request(nil), m.calls...)
}

// Paths возвращает пути записанных запросов по порядку.
func (m *MockClient) Paths() []string {
	calls := m.Calls()
	paths := make([]string, len(calls))
	for i, c := range calls {
		paths[i] = c.Path
	}
	return paths
}
