// Package store persists the last-used estimator inputs between runs.
//
// The engine itself never touches storage; this is the host-side
// collaborator that remembers what the user entered last time. Entries
// are JSON files written atomically (temp file + rename) and expire
// after a TTL so a months-old value set does not silently prefill a new
// session.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kmoss/sprout/internal/dosage"
)

// DefaultTTL is how long a remembered input set stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// inputsFileName is the file the last input set is stored under.
const inputsFileName = "last_inputs.json"

// Common store errors.
var (
	ErrNotFound = errors.New("no stored inputs")
	ErrExpired  = errors.New("stored inputs expired")
)

// entry wraps the stored inputs with timestamps for expiry.
type entry struct {
	Inputs    dosage.Inputs `json:"inputs"`
	SavedAt   time.Time     `json:"saved_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// FileStore remembers the last input set in a directory. Thread-safe.
type FileStore struct {
	directory string
	ttl       time.Duration

	mu sync.RWMutex
}

// NewFileStore creates a store rooted at directory, creating it if
// needed. A zero ttl uses DefaultTTL.
func NewFileStore(directory string, ttl time.Duration) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("store directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{directory: directory, ttl: ttl}, nil
}

// Save writes in as the remembered input set, replacing any prior value.
func (s *FileStore) Save(in dosage.Inputs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	data, err := json.MarshalIndent(entry{
		Inputs:    in,
		SavedAt:   now,
		ExpiresAt: now.Add(s.ttl),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stored inputs: %w", err)
	}

	filePath := filepath.Join(s.directory, inputsFileName)

	// Write to a temporary file first, then rename for atomicity.
	tempPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tempPath, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write stored inputs: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename stored inputs: %w", renameErr)
	}

	return nil
}

// Load returns the remembered input set. Returns ErrNotFound when
// nothing was saved and ErrExpired when the entry outlived its TTL.
func (s *FileStore) Load() (dosage.Inputs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := filepath.Join(s.directory, inputsFileName)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return dosage.Inputs{}, ErrNotFound
		}
		return dosage.Inputs{}, fmt.Errorf("failed to read stored inputs: %w", err)
	}

	var e entry
	if unmarshalErr := json.Unmarshal(data, &e); unmarshalErr != nil {
		return dosage.Inputs{}, fmt.Errorf("failed to unmarshal stored inputs: %w", unmarshalErr)
	}

	if time.Now().After(e.ExpiresAt) {
		return dosage.Inputs{}, ErrExpired
	}

	return e.Inputs, nil
}

// Clear removes the remembered input set. Idempotent.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := filepath.Join(s.directory, inputsFileName)
	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear stored inputs: %w", err)
	}
	return nil
}

// DefaultDirectory returns the per-user store location.
func DefaultDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".sprout")
	}
	return filepath.Join(home, ".sprout")
}
