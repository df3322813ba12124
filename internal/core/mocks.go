package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brads3290/cchooks"
)

// MockFileSystem implements FileSystem interface for testing
type MockFileSystem struct {
	Files    map[string][]byte
	Dirs     map[string]bool
	WriteErr error
	OpenErr  error
	StatErr  error
	mu       sync.RWMutex
}

// NewMockFileSystem creates a new mock filesystem for testing
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// WriteFile writes data to a mock file in memory
func (m *MockFileSystem) WriteFile(filename string, data []byte, _ os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dir := filepath.Dir(filename)
	m.Dirs[dir] = true

	m.Files[filename] = make([]byte, len(data))
	copy(m.Files[filename], data)
	return nil
}

// OpenFile opens a file (mock implementation for testing)
func (m *MockFileSystem) OpenFile(_ string, _ int, _ os.FileMode) (*os.File, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}

	// A throwaway temp file is good enough for hooks that append logs.
	return os.CreateTemp("", "mock_*")
}

// Stat returns file information for the specified path (mock implementation)
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.Files[name]; exists {
		return &mockFileInfo{name: name, size: int64(len(m.Files[name]))}, nil
	}

	return nil, os.ErrNotExist
}

type mockFileInfo struct {
	name string
	size int64
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0o644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Now() }
func (m *mockFileInfo) IsDir() bool        { return false }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// MockCommandExecutor implements CommandExecutor interface for testing
type MockCommandExecutor struct {
	Commands  []MockCommand
	Responses map[string]MockCommandResponse
	mu        sync.RWMutex
}

// MockCommand represents a mock command execution
type MockCommand struct {
	Dir  string
	Name string
	Args []string
}

// MockCommandResponse represents the response from a mock command
type MockCommandResponse struct {
	Stdout []byte
	Stderr []byte
	Error  error
}

// NewMockCommandExecutor creates a new mock command executor for testing
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{
		Commands:  []MockCommand{},
		Responses: make(map[string]MockCommandResponse),
	}
}

// ExecuteCommand records the command and returns the pre-configured response
func (m *MockCommandExecutor) ExecuteCommand(_ context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{
		Dir:  dir,
		Name: name,
		Args: append([]string{}, args...),
	})

	// Response lookup keys on "name firstArg" so tests can distinguish
	// subcommands without spelling out the whole argument list.
	key := name
	if len(args) > 0 {
		key = fmt.Sprintf("%s %s", name, args[0])
	}

	if response, exists := m.Responses[key]; exists {
		return response.Stdout, response.Stderr, response.Error
	}

	return []byte("mock command output"), nil, nil
}

// SetResponse configures a response for a specific command
func (m *MockCommandExecutor) SetResponse(command string, stdout, stderr []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Responses[command] = MockCommandResponse{
		Stdout: stdout,
		Stderr: stderr,
		Error:  err,
	}
}

// GetExecutedCommands returns all executed commands (used in tests)
func (m *MockCommandExecutor) GetExecutedCommands() []MockCommand {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]MockCommand, len(m.Commands))
	copy(result, m.Commands)
	return result
}

// MockRunner implements a test runner for cchooks that mimics cchooks.Runner structure
type MockRunner struct {
	PreToolUse  func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface
	PostToolUse func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface
	RawHook     func(context.Context, string) *cchooks.RawResponse
	RunCalled   bool
}

// Run marks the runner as called without reading from stdin
func (m *MockRunner) Run() {
	m.RunCalled = true
}

// MockRunnerFactory creates MockRunner instances
func MockRunnerFactory(preHook func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
	postHook func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	rawHook func(context.Context, string) *cchooks.RawResponse,
) Runner {
	return &MockRunner{
		PreToolUse:  preHook,
		PostToolUse: postHook,
		RawHook:     rawHook,
		RunCalled:   false,
	}
}

// TestHookContext creates a context suitable for testing
func TestHookContext(settingsChecker func(string) bool) *HookContext {
	if settingsChecker == nil {
		settingsChecker = func(string) bool { return true }
	}

	return &HookContext{
		FileSystem:      NewMockFileSystem(),
		CommandExecutor: NewMockCommandExecutor(),
		RunnerFactory:   MockRunnerFactory,
		SettingsChecker: settingsChecker,
	}
}
