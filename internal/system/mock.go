package system

import (
	"context"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []MockCommand

	// Responses maps command patterns to responses. A pattern is matched
	// against the space-joined "name args..." string by prefix, longest
	// pattern first.
	Responses map[string]MockResponse

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// InteractiveErr is returned by RunInteractive if set.
	InteractiveErr error

	// StartErr is returned by Start if set.
	StartErr error

	// MissingBinaries lists names LookPath fails to resolve.
	MissingBinaries []string

	nextPID int
}

// MockCommand records an executed command.
type MockCommand struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// Line returns the command as a single space-joined string.
func (c MockCommand) Line() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]MockCommand, 0),
		Responses: make(map[string]MockResponse),
		nextPID:   1000,
	}
}

// AddResponse registers a response for commands whose joined line starts
// with pattern.
func (m *MockExecutor) AddResponse(pattern string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = resp
}

func (m *MockExecutor) lookup(line string) MockResponse {
	best := ""
	for pattern := range m.Responses {
		if strings.HasPrefix(line, pattern) && len(pattern) > len(best) {
			best = pattern
		}
	}
	if best == "" {
		return m.DefaultResponse
	}
	return m.Responses[best]
}

func (m *MockExecutor) Run(ctx context.Context, dir string, env []string, name string, args ...string) (ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := MockCommand{Name: name, Args: args, Dir: dir, Env: env}
	m.Commands = append(m.Commands, cmd)

	resp := m.lookup(cmd.Line())
	if resp.Err != nil {
		return ExecResult{}, resp.Err
	}
	return ExecResult{
		Stdout:   []byte(resp.Stdout),
		Stderr:   []byte(resp.Stderr),
		ExitCode: resp.ExitCode,
	}, nil
}

func (m *MockExecutor) RunInteractive(ctx context.Context, dir string, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args, Dir: dir})
	return m.InteractiveErr
}

func (m *MockExecutor) Start(dir string, env []string, name string, args ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Commands = append(m.Commands, MockCommand{Name: name, Args: args, Dir: dir, Env: env})
	if m.StartErr != nil {
		return 0, m.StartErr
	}
	m.nextPID++
	return m.nextPID, nil
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, missing := range m.MissingBinaries {
		if missing == name {
			return "", &missingBinaryError{name: name}
		}
	}
	return "/usr/bin/" + name, nil
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (MockCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return MockCommand{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CommandLines returns all executed commands as joined strings.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, len(m.Commands))
	for i, c := range m.Commands {
		lines[i] = c.Line()
	}
	return lines
}

type missingBinaryError struct {
	name string
}

func (e *missingBinaryError) Error() string {
	return "exec: " + e.name + ": executable file not found in $PATH"
}
