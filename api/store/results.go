/* results.go
 * Contains the methods for interacting with the bracket_results collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bracket-pool/api/bracket"
	"bracket-pool/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTTL = 10 * time.Minute
	// used when some days could not be fetched so the gap is retried sooner
	retryTTL = time.Minute
	// used once the championship has been decided
	finishedTTL = 24 * time.Hour
)

// FetchResultsFromDb retrieves the stored results for the season
// Preconditions: Receives a context
// Postconditions: Returns the ResultsRecord, mongo.ErrNoDocuments if there is none, or an error if the lookup fails
func (s *Store) FetchResultsFromDb(ctx context.Context) (ResultsRecord, error) {
	var record ResultsRecord
	err := s.Collections.Results.FindOne(ctx, bson.D{{Key: "season", Value: s.Season}}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ResultsRecord{}, err
		}
		return ResultsRecord{}, fmt.Errorf("error fetching results from db: %w", err)
	}
	return record, nil
}

// GetResults gets the current master bracket. Checks if the data in the db is outdated, if it is, fetches the results
// from the source and updates the db
// Preconditions: Receives a context
// Postconditions: Returns the latest snapshot. If the refresh fails and a stored snapshot exists, the stored snapshot
// is returned and the failure logged. Returns an error only when there is nothing to serve.
func (s *Store) GetResults(ctx context.Context) (bracket.Snapshot, error) {
	record, err := s.FetchResultsFromDb(ctx)
	var shouldRefresh, haveStored bool
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return bracket.Snapshot{}, fmt.Errorf("error occured getting results from db: %w", err)
		}
		shouldRefresh = true
	} else {
		haveStored = true
		shouldRefresh = record.TTL < s.now().Unix()
	}

	var stored bracket.Snapshot
	if haveStored {
		stored, err = record.Snapshot()
		if err != nil {
			s.Log.Warnf("Discarding stored results: %v", err)
			haveStored, shouldRefresh = false, true
		}
	}

	if !shouldRefresh {
		return stored, nil
	}

	fresh, err := s.RefreshResults(ctx)
	if err != nil {
		if haveStored {
			metrics.ResultsRefreshes.WithLabelValues(metrics.OutcomeStale).Inc()
			s.Log.Warnf("Serving stale results from %s: %v", stored.UpdatedAt.Format(time.RFC3339), err)
			return stored, nil
		}
		return bracket.Snapshot{}, err
	}
	return fresh, nil
}

// RefreshResults fetches the results from the source and stores them, regardless of the ttl
// Preconditions: Receives a context, the store must have a Source
// Postconditions: Returns the new snapshot, or an error if it could not be fetched or stored
func (s *Store) RefreshResults(ctx context.Context) (bracket.Snapshot, error) {
	if s.Source == nil {
		return bracket.Snapshot{}, fmt.Errorf("no result source configured")
	}

	s.Log.Info("updating bracket results stored in db...")
	snap, err := s.Source.FetchSnapshot(ctx)
	if err != nil {
		metrics.ResultsRefreshes.WithLabelValues(metrics.OutcomeError).Inc()
		return bracket.Snapshot{}, fmt.Errorf("error refreshing results: %w", err)
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = s.now().UTC()
	}

	if err := s.StoreResults(ctx, snap); err != nil {
		metrics.ResultsRefreshes.WithLabelValues(metrics.OutcomeError).Inc()
		return bracket.Snapshot{}, err
	}

	metrics.ResultsRefreshes.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.ResolvedSlots.Set(float64(snap.Bracket.ResolvedCount()))
	metrics.FailedDays.Set(float64(len(snap.FailedDays)))
	if len(snap.FailedDays) > 0 {
		s.Log.WithField("failed_days", snap.FailedDays).Warn("results are missing tournament days")
	}
	return snap, nil
}

// StoreResults stores a snapshot for the season, replacing the previous one
func (s *Store) StoreResults(ctx context.Context, snap bracket.Snapshot) error {
	record := NewResultsRecord(s.Season, snap, s.DetermineTTL(snap))
	filter := bson.D{{Key: "season", Value: s.Season}}

	_, err := s.Collections.Results.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store bracket results: %w", err)
	}
	return nil
}

// DetermineTTL calculates when a snapshot should next be refreshed. Snapshots missing days are retried after retryTTL,
// a decided tournament is kept for finishedTTL and anything else for the store's ResultsTTL.
// Preconditions: Receives the snapshot that is about to be stored
// Postconditions: Returns the unix time the snapshot expires
func (s *Store) DetermineTTL(snap bracket.Snapshot) int64 {
	now := s.now()
	switch {
	case len(snap.FailedDays) > 0:
		return now.Add(retryTTL).Unix()
	case snap.Bracket.Resolved(bracket.NumSlots - 1):
		return now.Add(finishedTTL).Unix()
	default:
		return now.Add(s.ResultsTTL).Unix()
	}
}
