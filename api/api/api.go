/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, fuctions should
 * only be called from this file, not the sub packages for logic, store and external.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bracket-pool/api/bracket"
	"bracket-pool/api/external"
	"bracket-pool/api/logic"
	"bracket-pool/api/shared"
	"bracket-pool/api/store"
	"bracket-pool/metrics"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// API provides methods for interacting with the bracket pool data layer
type API struct {
	Store     store.Interface
	Ticker    TickerSource
	RankStyle RankStyle
	Log       *logrus.Entry

	now func() time.Time
}

// Options holds the settings used by NewAPI
type Options struct {
	DBName     string
	MongoURI   string
	Season     string
	RankStyle  RankStyle
	ResultsTTL time.Duration
	Source     *external.Source
	Logger     *logrus.Logger
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(ctx context.Context, opts Options) (*API, error) {
	if opts.DBName == "" || opts.Season == "" {
		return nil, fmt.Errorf("dbName and season are required")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("a result source is required")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	s, err := store.NewStore(ctx, store.Options{
		DBName:     opts.DBName,
		MongoURI:   opts.MongoURI,
		Season:     opts.Season,
		Source:     opts.Source,
		ResultsTTL: opts.ResultsTTL,
		Logger:     opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		opts.Logger.Warnf("Could not create indexes: %v", err)
	}

	return New(s, opts.Source, opts.RankStyle, opts.Logger), nil
}

// New creates an API over an existing store and ticker source
func New(s store.Interface, ticker TickerSource, rankStyle RankStyle, logger *logrus.Logger) *API {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if rankStyle == "" {
		rankStyle = RankDense
	}
	return &API{
		Store:     s,
		Ticker:    ticker,
		RankStyle: rankStyle,
		Log:       logger.WithField("component", "api"),
		now:       time.Now,
	}
}

// teams returns the first round field, or ErrNoTeams if the results do not have it yet
func (a *API) teams(ctx context.Context) ([bracket.NumTeams]string, error) {
	snap, err := a.Store.GetResults(ctx)
	if err != nil {
		return [bracket.NumTeams]string{}, err
	}
	for _, team := range snap.Teams {
		if team == "" {
			return snap.Teams, ErrNoTeams
		}
	}
	return snap.Teams, nil
}

// SetUserBracket contains the logic to set a user's bracket in the DB.
// It receives a user struct that contains userID and userName, and the user's picks in slot order. Picks may be
// shorter than 63 or contain blanks and "*" for games the user has not picked yet.
// It replaces the user's bracket in the database, or returns an error wrapping ErrInvalidBracket if the picks are
// not a valid bracket.
func (a *API) SetUserBracket(ctx context.Context, user shared.User, inputTeams []string) error {
	if len(inputTeams) > bracket.NumSlots {
		return fmt.Errorf("%w: expected at most %d picks but got %d", ErrInvalidBracket, bracket.NumSlots, len(inputTeams))
	}

	validTeams, err := a.teams(ctx)
	if err != nil {
		return err
	}

	// Fix formatting on input teams and split out the games not picked yet
	picks := make([]string, len(inputTeams))
	var named []string
	var namedAt []int
	for i, team := range inputTeams {
		team = strings.ReplaceAll(team, "\"", "")
		team = strings.ReplaceAll(team, "“", "")
		team = strings.ReplaceAll(team, "”", "")
		team = strings.TrimSpace(team)
		if team == "" || team == logic.IncompleteMarker {
			continue
		}
		named = append(named, team)
		namedAt = append(namedAt, i)
	}

	// Validate input teams
	teams, invalidTeams := logic.CheckTeamNames(named, validTeams[:])
	if len(invalidTeams) > 0 {
		var str strings.Builder
		str.WriteString("the following team names are invalid:")
		for i := range invalidTeams {
			str.WriteString(fmt.Sprintf(" '%s'", invalidTeams[i]))
		}
		return fmt.Errorf("%w: %s", ErrInvalidBracket, str.String())
	}
	for i, team := range teams {
		picks[namedAt[i]] = team
	}

	raw := logic.EncodePicks(picks)
	if err := logic.ValidateBracket(logic.ParsePicks(raw), validTeams); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBracket, err)
	}

	err = a.Store.StoreEntry(ctx, shared.Entry{UserID: user.UserID, Username: user.Username, Picks: raw})
	if err != nil {
		return err
	}
	metrics.BracketsSubmitted.Inc()
	a.Log.WithFields(logrus.Fields{"userid": user.UserID, "picks": len(named)}).Info("bracket stored")
	return nil
}

// GetUserBracket gets a user's stored entry and its parsed picks
// Preconditions: Receives the user's id
// Postconditions: Returns the entry and picks, or an error wrapping ErrNoEntry if the user has no bracket
func (a *API) GetUserBracket(ctx context.Context, userID string) (shared.Entry, logic.Picks, error) {
	entry, err := a.Store.GetEntry(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Entry{}, logic.Picks{}, fmt.Errorf("%w: %w", ErrNoEntry, err)
		}
		return shared.Entry{}, logic.Picks{}, err
	}
	return entry, logic.ParsePicks(entry.Picks), nil
}

// CheckBracket contains the logic required to check a bracket.
// It receives a user struct and receiver pointer to api.
// It returns a string containing the user's score, rank and potential, or an error if it occurs.
func (a *API) CheckBracket(ctx context.Context, user shared.User) (string, error) {
	entry, _, err := a.GetUserBracket(ctx, user.UserID)
	if err != nil {
		return "", err
	}

	rows, err := a.Standings(ctx)
	if err != nil {
		return "", err
	}

	for _, row := range rows {
		if row.UserID != user.UserID {
			continue
		}
		score := logic.ScoreTuple{Rounds: row.Rounds, Total: row.Score, Games: row.Games}
		potential := logic.Potential{Loss: row.Loss}
		if row.Potential != nil {
			potential.Value, potential.Valid = *row.Potential, true
		}
		name := entry.Username
		if name == "" {
			name = user.Username
		}
		return logic.Report(name, score, potential, row.Rank), nil
	}
	return "", fmt.Errorf("%w: user %s is missing from the standings", ErrNoEntry, user.UserID)
}

// Standings calculates the leaderboard
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns one row per entry ordered by score, highest first, with ties in submission order, or an
// error if the entries or results could not be fetched
func (a *API) Standings(ctx context.Context) ([]StandingRow, error) {
	entries, err := a.Store.GetAllEntries(ctx)
	if err != nil {
		return nil, err
	}
	snap, err := a.Store.GetResults(ctx)
	if err != nil {
		return nil, err
	}

	scores := logic.Scores(snap.Bracket.Master, entries)
	potentials := logic.Potentials(snap.Bracket.Elim, entries, snap.Bracket.Master)
	endRounds := logic.EndRounds(entries)
	order := logic.Order(scores)
	ranks := a.RankStyle.rank(order, scores)

	rows := make([]StandingRow, len(order))
	for pos, idx := range order {
		entry := entries[idx]
		row := StandingRow{
			Rank:      ranks[pos],
			UserID:    entry.UserID,
			Username:  entry.Username,
			State:     logic.ParsePicks(entry.Picks).State.String(),
			Score:     scores[idx].Total,
			Rounds:    scores[idx].Rounds,
			Games:     scores[idx].Games,
			EndRounds: endRounds[idx],
			Loss:      potentials[idx].Loss,
		}
		if potentials[idx].Valid {
			value := potentials[idx].Value
			row.Potential = &value
		}
		rows[pos] = row
	}
	return rows, nil
}

// GetLeaderboard calculates the leaderboard and generates a response string
// Preconditions: Receives receiver pointer to api
// Postconditions: Returns a string with the summary of the leaderboard
func (a *API) GetLeaderboard(ctx context.Context) (string, error) {
	rows, err := a.Standings(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No brackets have been submitted yet", nil
	}

	var response strings.Builder
	response.WriteString("The users with the best brackets are:\n")
	for _, row := range rows {
		potential := "None"
		if row.Potential != nil {
			potential = fmt.Sprint(*row.Potential)
		}
		response.WriteString(fmt.Sprintf("%d. %s, %d points (%d correct), potential %s\n", row.Rank, row.Username, row.Score, row.Games, potential))
	}
	return response.String(), nil
}

// GetTeams gets the 64 team first round field in bracket order.
// It returns a string slice containing all teams, or ErrNoTeams if the field is not known yet.
func (a *API) GetTeams(ctx context.Context) ([]string, error) {
	teams, err := a.teams(ctx)
	if err != nil {
		return nil, err
	}
	return teams[:], nil
}

// GetMasterBracket gets the current master bracket and elimination list
func (a *API) GetMasterBracket(ctx context.Context) (bracket.Bracket, error) {
	snap, err := a.Store.GetResults(ctx)
	if err != nil {
		return bracket.Bracket{}, err
	}
	return snap.Bracket, nil
}

// GetEndRounds gets a user's Elite 8, Final Four and Championship picks as image names
// Preconditions: Receives the user's id
// Postconditions: Returns 7 image names, an empty list if the user has no picks, or an error wrapping ErrNoEntry
func (a *API) GetEndRounds(ctx context.Context, userID string) ([]string, error) {
	_, picks, err := a.GetUserBracket(ctx, userID)
	if err != nil {
		return nil, err
	}
	return logic.EndRoundsOf(picks), nil
}

// GetScoreboard gets today's score ticker
func (a *API) GetScoreboard(ctx context.Context) ([]external.TickerGame, error) {
	if a.Ticker == nil {
		return nil, fmt.Errorf("no score ticker configured")
	}
	return a.Ticker.FetchTicker(ctx, a.now())
}

// GetTournamentInfo gets the following information about the pool: season, number of brackets, games decided, the
// champion if decided, when results were last updated and any days missing from the results.
func (a *API) GetTournamentInfo(ctx context.Context) (TournamentInfo, error) {
	snap, err := a.Store.GetResults(ctx)
	if err != nil {
		return TournamentInfo{}, err
	}
	entries, err := a.Store.GetAllEntries(ctx)
	if err != nil {
		return TournamentInfo{}, err
	}

	return TournamentInfo{
		Season:        a.Store.GetSeason(),
		Entries:       len(entries),
		ResolvedGames: snap.Bracket.ResolvedCount(),
		Champion:      snap.Bracket.Master[bracket.NumSlots-1],
		FailedDays:    snap.FailedDays,
		UpdatedAt:     snap.UpdatedAt,
	}, nil
}

// RefreshResults fetches the latest results regardless of the cache ttl
func (a *API) RefreshResults(ctx context.Context) error {
	snap, err := a.Store.RefreshResults(ctx)
	if err != nil {
		return err
	}
	a.Log.WithFields(logrus.Fields{
		"resolved":    snap.Bracket.ResolvedCount(),
		"failed_days": len(snap.FailedDays),
	}).Info("results refreshed")
	return nil
}
