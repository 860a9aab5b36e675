// Package store persists budget snapshots between sessions.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"budgetbuddy/internal/budget"
	"budgetbuddy/internal/logging"
)

// Supported backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Store loads and saves the whole budget state.
type Store interface {
	// Load returns the stored snapshot. A missing store yields an empty
	// snapshot and no error.
	Load(ctx context.Context) (budget.Snapshot, error)
	// Save replaces the stored state with s.
	Save(ctx context.Context, s budget.Snapshot) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	Path          string
	BackupEnabled bool
}

// CorruptDataError reports a store file that could not be decoded at all.
// The file has been moved to MovedTo and Load returned an empty snapshot.
type CorruptDataError struct {
	Path    string
	MovedTo string
	Err     error
}

func (e *CorruptDataError) Error() string {
	if e.MovedTo == "" {
		return fmt.Sprintf("data file %s is unreadable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("data file %s is unreadable and was moved to %s: %v", e.Path, e.MovedTo, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// New opens the backend named in opts.
func New(ctx context.Context, opts Options, logger logging.Logger) (Store, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("warn", "text")
	}
	path, err := ResolvePath(opts.Path)
	if err != nil {
		return nil, err
	}
	logger = logger.WithFields(
		logging.F(logging.FieldBackend, opts.Backend),
		logging.F(logging.FieldFile, path))

	switch strings.ToLower(opts.Backend) {
	case "", BackendYAML:
		return NewYAMLStore(path, opts.BackupEnabled, logger), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}

// ResolvePath expands a leading "~" and makes path absolute.
func ResolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("storage path is empty")
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error resolving home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving storage path: %w", err)
	}
	return abs, nil
}
