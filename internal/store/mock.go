package store

import (
	"context"

	"budgetbuddy/internal/budget"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	Snapshot budget.Snapshot
	Saves    int
	Closed   bool

	// Error flags for testing error conditions
	LoadError  error
	SaveError  error
	CloseError error
}

// Load returns the held snapshot.
func (m *MockStore) Load(_ context.Context) (budget.Snapshot, error) {
	if m.LoadError != nil {
		return budget.Snapshot{}, m.LoadError
	}
	return m.Snapshot, nil
}

// Save records snap.
func (m *MockStore) Save(_ context.Context, snap budget.Snapshot) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Snapshot = snap
	m.Saves++
	return nil
}

func (m *MockStore) Close() error {
	m.Closed = true
	return m.CloseError
}
