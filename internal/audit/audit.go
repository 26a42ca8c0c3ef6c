// Package audit provides append-only event logging for sandbox lifecycle
// operations. All events for a repository share a single JSON Lines file
// under the paddock state directory.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate EventType = "create"
	EventRun    EventType = "run"
	EventSet    EventType = "set"
	EventSetEnv EventType = "set-env"
	EventRemove EventType = "remove"
	EventPrune  EventType = "prune"
	EventCommit EventType = "commit"
	EventPush   EventType = "push"
	EventOpen   EventType = "open"
	EventError  EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Sandbox   string    `json:"sandbox"`
	Details   string    `json:"details,omitempty"`
}

// Logger appends and reads lifecycle events. Events live in
// {stateDir}/audit.log, one JSON object per line.
type Logger struct {
	stateDir string
}

// NewLogger creates an audit logger rooted at the paddock state directory.
func NewLogger(stateDir string) *Logger {
	return &Logger{stateDir: stateDir}
}

func (l *Logger) logPath() string {
	return filepath.Join(l.stateDir, "audit.log")
}

// Log appends an event to the shared audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path := l.logPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, sandbox, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Sandbox:   sandbox,
		Details:   details,
	})
}

// Events reads events in chronological order. When sandbox is non-empty
// only events for that sandbox are returned.
func (l *Logger) Events(sandbox string) ([]Event, error) {
	f, err := os.Open(l.logPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		if sandbox != "" && event.Sandbox != sandbox {
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}
