/* entries.go
 * Contains the methods for interacting with the entries collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"bracket-pool/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreEntry stores a user's bracket for the season
// Preconditions: Receives a context and the entry to store
// Postconditions: Replaces any bracket the user already has stored (last write wins), or returns an error if the
// operation was unsuccessful
func (s *Store) StoreEntry(ctx context.Context, entry shared.Entry) error {
	filter := bson.M{
		"userid": entry.UserID,
		"season": s.Season,
	}
	update := bson.M{
		"$set": bson.M{
			"username":   entry.Username,
			"picks":      entry.Picks,
			"updated_at": s.now().UTC(),
		},
	}

	_, err := s.Collections.Entries.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store entry for user %s: %w", entry.UserID, err)
	}
	s.Log.WithField("userid", entry.UserID).Debug("stored entry")
	return nil
}

// GetEntry does DB lookup and gets the bracket for a user
// Preconditions: Receives a context and the user's id
// Postconditions: Returns the user's entry if it exists, an error wrapping mongo.ErrNoDocuments if it does not, or an
// error if the lookup fails
func (s *Store) GetEntry(ctx context.Context, userID string) (shared.Entry, error) {
	var record EntryRecord
	err := s.Collections.Entries.FindOne(ctx, bson.M{"userid": userID, "season": s.Season}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Entry{}, fmt.Errorf("no entry for user %s: %w", userID, err)
		}
		return shared.Entry{}, fmt.Errorf("error fetching entry from db: %w", err)
	}
	return record.ToEntry(), nil
}

// GetAllEntries does DB lookup and gets every entry for the season, oldest submission first. Used in leaderboard
// calculations.
func (s *Store) GetAllEntries(ctx context.Context) ([]shared.Entry, error) {
	filter := bson.D{{Key: "season", Value: s.Season}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.Collections.Entries.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching entries from db: %w", err)
	}

	var records []EntryRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of entries: %w", err)
	}

	entries := make([]shared.Entry, len(records))
	for i, r := range records {
		entries[i] = r.ToEntry()
	}
	return entries, nil
}
