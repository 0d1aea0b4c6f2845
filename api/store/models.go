/* models.go
 * This file contain the structs that relate to DB objects and their conversion to and from the shared types
 */

package store

import (
	"fmt"
	"time"

	"bracket-pool/api/bracket"
	"bracket-pool/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryRecord is a user's bracket as stored in the entries collection. There is one record per user per season.
type EntryRecord struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userid"`
	Username  string             `bson:"username"`
	Season    string             `bson:"season"`
	Picks     string             `bson:"picks"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r EntryRecord) ToEntry() shared.Entry {
	return shared.Entry{UserID: r.UserID, Username: r.Username, Picks: r.Picks}
}

// ResultsRecord is the encoded bracket as stored in the bracket_results collection. TTL is the unix time after which
// the record should be refreshed from the NCAA scoreboard.
type ResultsRecord struct {
	Season     string    `bson:"season"`
	Master     []string  `bson:"master"`
	Elim       []string  `bson:"elim"`
	Teams      []string  `bson:"teams"`
	FailedDays []string  `bson:"failed_days,omitempty"`
	TTL        int64     `bson:"ttl"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// NewResultsRecord converts a snapshot into the record stored for a season
func NewResultsRecord(season string, snap bracket.Snapshot, ttl int64) ResultsRecord {
	return ResultsRecord{
		Season:     season,
		Master:     snap.Bracket.Master[:],
		Elim:       snap.Bracket.Elim[:],
		Teams:      snap.Teams[:],
		FailedDays: snap.FailedDays,
		TTL:        ttl,
		UpdatedAt:  snap.UpdatedAt,
	}
}

// Snapshot converts the record back into a snapshot
// Preconditions: Receives a ResultsRecord decoded from the db
// Postconditions: Returns the snapshot, or an error if the stored arrays are the wrong length
func (r ResultsRecord) Snapshot() (bracket.Snapshot, error) {
	var snap bracket.Snapshot
	if len(r.Master) != bracket.NumSlots || len(r.Elim) != bracket.NumSlots {
		return snap, fmt.Errorf("results for season %s have %d master and %d elim slots, expected %d",
			r.Season, len(r.Master), len(r.Elim), bracket.NumSlots)
	}
	if len(r.Teams) != bracket.NumTeams && len(r.Teams) != 0 {
		return snap, fmt.Errorf("results for season %s have %d teams, expected %d", r.Season, len(r.Teams), bracket.NumTeams)
	}
	copy(snap.Bracket.Master[:], r.Master)
	copy(snap.Bracket.Elim[:], r.Elim)
	copy(snap.Teams[:], r.Teams)
	snap.FailedDays = r.FailedDays
	snap.UpdatedAt = r.UpdatedAt
	return snap, nil
}
