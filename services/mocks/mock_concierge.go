package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"luxetravel/services"
)

// MockConcierge is a mock implementation of services.Concierge
type MockConcierge struct {
	mock.Mock
}

func (m *MockConcierge) Search(ctx context.Context, query string) (services.SearchResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(services.SearchResult), args.Error(1)
}

func (m *MockConcierge) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockConcierge) Chat(ctx context.Context, history []services.ChatTurn, message string) (string, error) {
	args := m.Called(ctx, history, message)
	return args.String(0), args.Error(1)
}

func (m *MockConcierge) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	args := m.Called(ctx, audio, mimeType)
	return args.String(0), args.Error(1)
}

func (m *MockConcierge) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ services.Concierge = (*MockConcierge)(nil)
