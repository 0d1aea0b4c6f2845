/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"bracket-pool/api/bracket"
	"bracket-pool/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreEntry(ctx context.Context, entry shared.Entry) error
	GetEntry(ctx context.Context, userID string) (shared.Entry, error)
	GetAllEntries(ctx context.Context) ([]shared.Entry, error)
	GetResults(ctx context.Context) (bracket.Snapshot, error)
	RefreshResults(ctx context.Context) (bracket.Snapshot, error)

	// Getter methods for accessing fields
	GetSeason() string
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetSeason returns the season the store reads and writes
func (s *Store) GetSeason() string {
	return s.Season
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
