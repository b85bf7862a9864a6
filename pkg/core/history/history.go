// Package history keeps a persisted log of file operations performed by
// the organizer, so every move, junk placement, and skip can be audited
// after the fact.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultHistoryFile = "operations.json"

// OperationType names the kind of file operation recorded.
type OperationType string

const (
	OpMove OperationType = "move"
	OpJunk OperationType = "junk"
	OpSkip OperationType = "skip"
)

// Operation is one recorded file operation.
type Operation struct {
	Type        OperationType `json:"type"`
	Source      string        `json:"source"`
	Destination string        `json:"destination,omitempty"`
	Info        string        `json:"info,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Log manages the operation history, persisted as JSON in the config
// directory. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	entries  []Operation
	filePath string
	logger   *log.Logger
}

// NewLog creates the history log, loading any existing entries from
// configDir. A missing or unreadable file starts a fresh history rather
// than failing initialization.
func NewLog(configDir string, logger *log.Logger) (*Log, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	l := &Log{
		entries:  []Operation{},
		filePath: filepath.Join(configDir, defaultHistoryFile),
		logger:   logger,
	}
	if err := l.load(); err != nil {
		l.logger.Warnf("Failed to load history from %s: %v. Starting with empty history.", l.filePath, err)
	}
	return l, nil
}

// Record appends an operation (stamping it with the current time when
// unset) and saves the history.
func (l *Log) Record(op Operation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if op.Timestamp.IsZero() {
		op.Timestamp = time.Now()
	}
	l.entries = append(l.entries, op)
	return l.save()
}

// Entries returns a copy of all recorded operations, oldest first.
func (l *Log) Entries() []Operation {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Operation, len(l.entries))
	copy(out, l.entries)
	return out
}

// save writes the history file. Callers must hold the write lock.
func (l *Log) save() error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(l.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file %s: %w", l.filePath, err)
	}
	return nil
}

func (l *Log) load() error {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read history file %s: %w", l.filePath, err)
	}
	if len(data) == 0 {
		return nil
	}
	var loaded []Operation
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal history from %s: %w", l.filePath, err)
	}
	l.entries = loaded
	return nil
}
