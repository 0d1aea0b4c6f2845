/* test_helpers_test.go
 * Contains test helper functions and mock structures for store package tests
 */

package store

import (
	"context"
	"testing"
	"time"

	"bracket-pool/api/bracket"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var testNow = time.Date(2024, time.March, 23, 12, 0, 0, 0, time.UTC)

// fakeSource is a ResultSource returning a fixed snapshot or error
type fakeSource struct {
	snap  bracket.Snapshot
	err   error
	calls int
}

func (f *fakeSource) FetchSnapshot(ctx context.Context) (bracket.Snapshot, error) {
	f.calls++
	return f.snap, f.err
}

// newTestStore creates a Store backed by the mock deployment of mt
func newTestStore(mt *mtest.T, source ResultSource) (*Store, *test.Hook) {
	logger, hook := test.NewNullLogger()
	s := newStore(mt.Client, mt.DB, Options{
		Season:     "2024",
		Source:     source,
		ResultsTTL: 10 * time.Minute,
		Logger:     logger,
	})
	s.now = func() time.Time { return testNow }
	return s, hook
}

// toDoc converts a struct into the bson.D a mock cursor response carries
func toDoc(t testing.TB, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

// sampleSnapshot returns a snapshot with the first round played
func sampleSnapshot() bracket.Snapshot {
	var snap bracket.Snapshot
	for slot := 0; slot < 32; slot++ {
		snap.Bracket.Master[slot] = "winner"
		snap.Bracket.Elim[slot] = "loser"
	}
	for i := range snap.Teams {
		snap.Teams[i] = "team"
	}
	snap.UpdatedAt = testNow.Add(-time.Hour)
	return snap
}
