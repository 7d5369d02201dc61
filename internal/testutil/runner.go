package testutil

import (
	"context"
	"sync"
	"time"
)

type mockResponse struct {
	output   string
	exitCode int
	err      error
	delay    time.Duration
	effect   func()
}

// MockRunner answers command lines with registered responses and records
// every call. It satisfies shell.Runner.
type MockRunner struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

// NewMockRunner creates a runner with no registered responses.
func NewMockRunner() *MockRunner {
	return &MockRunner{responses: make(map[string]mockResponse)}
}

// SetResponse registers the output and exit code for commandLine.
func (m *MockRunner) SetResponse(commandLine, output string, exitCode int) {
	m.set(commandLine, mockResponse{output: output, exitCode: exitCode})
}

// SetError registers a response that also returns err.
func (m *MockRunner) SetError(commandLine, output string, exitCode int, err error) {
	m.set(commandLine, mockResponse{output: output, exitCode: exitCode, err: err})
}

// SetResponseWithDelay registers a successful command that blocks for delay
// or until its context ends.
func (m *MockRunner) SetResponseWithDelay(commandLine string, delay time.Duration) {
	m.set(commandLine, mockResponse{delay: delay})
}

// SetEffect registers a successful command that runs effect when called.
func (m *MockRunner) SetEffect(commandLine string, effect func()) {
	m.set(commandLine, mockResponse{effect: effect})
}

// Calls returns the command lines run so far, in order.
func (m *MockRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Run returns the registered response for commandLine.
func (m *MockRunner) Run(ctx context.Context, _, commandLine string) (string, int, error) {
	m.mu.Lock()
	m.calls = append(m.calls, commandLine)
	resp, ok := m.responses[commandLine]
	m.mu.Unlock()

	if !ok {
		return "command not configured", 1, ErrMockCommandNotConfigured
	}
	if resp.delay > 0 {
		timer := time.NewTimer(resp.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", -1, ctx.Err()
		case <-timer.C:
		}
	}
	if resp.effect != nil {
		resp.effect()
	}
	return resp.output, resp.exitCode, resp.err
}

func (m *MockRunner) set(commandLine string, resp mockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandLine] = resp
}
