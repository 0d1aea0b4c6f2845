/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 */

package api

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bracket-pool/api/bracket"
	"bracket-pool/api/external"
	"bracket-pool/api/shared"
	"bracket-pool/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Entries  map[string]shared.Entry
	Snapshot bracket.Snapshot
	Fresh    bracket.Snapshot
	Season   string

	// Error injection for testing error paths
	StoreEntryError     error
	GetEntryError       error
	GetAllEntriesError  error
	GetResultsError     error
	RefreshResultsError error

	// Call counts
	RefreshCalls int

	order []string
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

// mockClient implements the minimal client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with the given results snapshot
func NewMockStore(season string, snap bracket.Snapshot) *MockStore {
	return &MockStore{
		Entries:  make(map[string]shared.Entry),
		Snapshot: snap,
		Fresh:    snap,
		Season:   season,
	}
}

// StoreEntry mock implementation
func (m *MockStore) StoreEntry(ctx context.Context, entry shared.Entry) error {
	if m.StoreEntryError != nil {
		return m.StoreEntryError
	}
	if _, exists := m.Entries[entry.UserID]; !exists {
		m.order = append(m.order, entry.UserID)
	}
	m.Entries[entry.UserID] = entry
	return nil
}

// GetEntry mock implementation
func (m *MockStore) GetEntry(ctx context.Context, userID string) (shared.Entry, error) {
	if m.GetEntryError != nil {
		return shared.Entry{}, m.GetEntryError
	}
	entry, ok := m.Entries[userID]
	if !ok {
		return shared.Entry{}, fmt.Errorf("no entry for user %s: %w", userID, mongo.ErrNoDocuments)
	}
	return entry, nil
}

// GetAllEntries mock implementation, entries are returned in the order they were first stored
func (m *MockStore) GetAllEntries(ctx context.Context) ([]shared.Entry, error) {
	if m.GetAllEntriesError != nil {
		return nil, m.GetAllEntriesError
	}
	// entries added directly to the map go after stored ones, sorted by id
	var extra []string
	seen := make(map[string]bool, len(m.order))
	for _, id := range m.order {
		seen[id] = true
	}
	for id := range m.Entries {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)

	entries := make([]shared.Entry, 0, len(m.Entries))
	for _, id := range append(append([]string(nil), m.order...), extra...) {
		entries = append(entries, m.Entries[id])
	}
	return entries, nil
}

// GetResults mock implementation
func (m *MockStore) GetResults(ctx context.Context) (bracket.Snapshot, error) {
	if m.GetResultsError != nil {
		return bracket.Snapshot{}, m.GetResultsError
	}
	return m.Snapshot, nil
}

// RefreshResults mock implementation, replaces the snapshot with Fresh
func (m *MockStore) RefreshResults(ctx context.Context) (bracket.Snapshot, error) {
	m.RefreshCalls++
	if m.RefreshResultsError != nil {
		return bracket.Snapshot{}, m.RefreshResultsError
	}
	m.Snapshot = m.Fresh
	return m.Snapshot, nil
}

// GetSeason mock implementation
func (m *MockStore) GetSeason() string {
	return m.Season
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// MockTicker implements TickerSource for testing
type MockTicker struct {
	Games []external.TickerGame
	Err   error
	Days  []time.Time
}

func (m *MockTicker) FetchTicker(ctx context.Context, day time.Time) ([]external.TickerGame, error) {
	m.Days = append(m.Days, day)
	return m.Games, m.Err
}
