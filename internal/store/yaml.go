package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/fileutils"
	"budgetbuddy/internal/logging"
	"budgetbuddy/internal/models"

	"gopkg.in/yaml.v3"
)

// YAMLStore keeps the snapshot in a single YAML file.
type YAMLStore struct {
	path   string
	backup bool
	logger logging.Logger
}

// NewYAMLStore creates a store for path. With backup set, the previous
// file is kept as path + ".bak" on every save.
func NewYAMLStore(path string, backup bool, logger logging.Logger) *YAMLStore {
	return &YAMLStore{path: path, backup: backup, logger: logger}
}

// Path returns the data file location.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads the data file.
func (s *YAMLStore) Load(_ context.Context) (budget.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("Data file not found, starting empty")
			return budget.Snapshot{}, nil
		}
		return budget.Snapshot{}, fmt.Errorf("error reading data file: %w", err)
	}

	var snap budget.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return budget.Snapshot{}, s.quarantine(err)
	}
	s.logger.Debug("Loaded data file", logging.F(logging.FieldCount, len(snap.Overall.Expenses)))
	return snap, nil
}

// quarantine moves an undecodable file aside so the next save does not
// overwrite it.
func (s *YAMLStore) quarantine(cause error) error {
	moved := s.path + ".corrupt"
	if err := os.Rename(s.path, moved); err != nil {
		s.logger.WithError(err).Error("Failed to move unreadable data file")
		moved = ""
	}
	s.logger.Warn("Data file is unreadable",
		logging.F("moved_to", moved),
		logging.F(logging.FieldError, cause.Error()))
	return &CorruptDataError{Path: s.path, MovedTo: moved, Err: cause}
}

// Save writes snap atomically: a temp file in the same directory is
// renamed over the data file.
func (s *YAMLStore) Save(_ context.Context, snap budget.Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error marshaling budget data: %w", err)
	}

	var before func() error
	if s.backup {
		before = s.backupCurrent
	}
	if err := fileutils.WriteFileAtomic(s.path, data, models.PermissionDataFile, before); err != nil {
		return fmt.Errorf("error saving budget data: %w", err)
	}

	s.logger.Debug("Saved data file", logging.F(logging.FieldCount, len(snap.Overall.Expenses)))
	return nil
}

func (s *YAMLStore) backupCurrent() error {
	if _, err := fileutils.CopyFile(s.path, s.path+".bak", models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing backup: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *YAMLStore) Close() error {
	return nil
}
