// logger.go - Recording logger for tests
package testutil

import (
	"strings"
	"sync"
)

// MockLogger implements domain.Logger and keeps every message it receives
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

// NewMockLogger creates an empty recording logger
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	line := "ERROR: " + msg
	if err != nil {
		line += " - " + err.Error()
	}
	m.record(line)
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

// Messages returns a copy of the recorded lines
func (m *MockLogger) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// Contains reports whether any recorded line contains substr
func (m *MockLogger) Contains(substr string) bool {
	for _, line := range m.Messages() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
