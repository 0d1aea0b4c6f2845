/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into two files:
 * entries and results. Each of these files contain methods for interacting with that part of the database
 */

package store

import (
	"context"
	"fmt"
	"time"

	"bracket-pool/api/bracket"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultSource produces fresh bracket snapshots, normally from the NCAA scoreboard
type ResultSource interface {
	FetchSnapshot(ctx context.Context) (bracket.Snapshot, error)
}

type Collections struct {
	Entries *mongo.Collection
	Results *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Season      string
	Source      ResultSource
	ResultsTTL  time.Duration
	Log         *logrus.Entry
	Collections Collections

	now func() time.Time
}

// Options holds the settings used by NewStore
type Options struct {
	DBName     string
	MongoURI   string
	Season     string
	Source     ResultSource
	ResultsTTL time.Duration
	Logger     *logrus.Logger
}

// Function for initialsing Store. Connects to the db and sets the collections
// Preconditions: Receives a context and Options with the db name, mongo uri, season and result source
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Season == "" {
		return nil, fmt.Errorf("season cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	return newStore(client, client.Database(opts.DBName), opts), nil
}

func newStore(client *mongo.Client, db *mongo.Database, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.ResultsTTL <= 0 {
		opts.ResultsTTL = defaultTTL
	}
	return &Store{
		Client:     client,
		Database:   db,
		Season:     opts.Season,
		Source:     opts.Source,
		ResultsTTL: opts.ResultsTTL,
		Log:        opts.Logger.WithFields(logrus.Fields{"component": "store", "season": opts.Season}),
		Collections: Collections{
			Entries: db.Collection("entries"),
			Results: db.Collection("bracket_results"),
		},
		now: time.Now,
	}
}

// EnsureIndexes creates the unique indexes the upserts rely on
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Collections.Entries.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}, {Key: "userid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating entries index: %w", err)
	}
	_, err = s.Collections.Results.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("error creating results index: %w", err)
	}
	return nil
}
