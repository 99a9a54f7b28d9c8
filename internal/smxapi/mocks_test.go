package smxapi

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockIssuer provides a mock implementation for testing
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Do(ctx context.Context, req Request) (*Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*Response)
	return resp, args.Error(1)
}

// MockLogger for testing
type MockLogger struct {
	mock.Mock
}

func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) Debug(message string) {
	m.Called(message)
}

func (m *MockLogger) Info(message string) {
	m.Called(message)
}

func (m *MockLogger) Warn(message string) {
	m.Called(message)
}

func (m *MockLogger) Error(message string) {
	m.Called(message)
}

// quietLogger accepts any log call
func quietLogger() *MockLogger {
	logger := NewMockLogger()
	logger.On("Debug", mock.AnythingOfType("string")).Return().Maybe()
	logger.On("Info", mock.AnythingOfType("string")).Return().Maybe()
	logger.On("Warn", mock.AnythingOfType("string")).Return().Maybe()
	logger.On("Error", mock.AnythingOfType("string")).Return().Maybe()
	return logger
}
