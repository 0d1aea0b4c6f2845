/* models.go
 * This file contain the interfaces, structs and helper functions that are used by api consumers
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bracket-pool/api/external"
	"bracket-pool/api/logic"
)

var (
	// ErrInvalidBracket is returned when submitted picks are not a valid bracket
	ErrInvalidBracket = errors.New("invalid bracket")
	// ErrNoEntry is returned when a user has not submitted a bracket. It wraps mongo.ErrNoDocuments.
	ErrNoEntry = errors.New("no bracket submitted")
	// ErrNoTeams is returned when the first round field is not known yet
	ErrNoTeams = errors.New("bracket teams are not available yet")
)

// RankStyle selects how tied users are ranked
type RankStyle string

const (
	// RankDense gives tied users the same rank and the next user the following rank (1, 1, 2)
	RankDense RankStyle = "dense"
	// RankCompetition gives tied users the same rank and skips the ranks they share (1, 1, 3)
	RankCompetition RankStyle = "competition"
)

// ParseRankStyle parses a rank style, the empty string is RankDense
func ParseRankStyle(s string) (RankStyle, error) {
	switch RankStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankDense:
		return RankDense, nil
	case RankCompetition:
		return RankCompetition, nil
	default:
		return "", fmt.Errorf("unknown rank style %q, expected %q or %q", s, RankDense, RankCompetition)
	}
}

func (r RankStyle) rank(order []int, scores []logic.ScoreTuple) []int {
	if r == RankCompetition {
		return logic.CompetitionRank(order, scores)
	}
	return logic.Rank(order, scores)
}

// StandingRow is a user's line on the leaderboard
type StandingRow struct {
	Rank      int                 `json:"rank"`
	UserID    string              `json:"userId"`
	Username  string              `json:"username"`
	State     string              `json:"state"`
	Score     int                 `json:"score"`
	Rounds    [6]int              `json:"rounds"`
	Games     int                 `json:"games"`
	Potential *int                `json:"potential"`
	EndRounds []string            `json:"endRounds"`
	Loss      logic.LossBreakdown `json:"-"`
}

// TournamentInfo summarises the state of the pool
type TournamentInfo struct {
	Season        string    `json:"season"`
	Entries       int       `json:"entries"`
	ResolvedGames int       `json:"resolvedGames"`
	Champion      string    `json:"champion,omitempty"`
	FailedDays    []string  `json:"failedDays,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Lines returns the info as "attribute: value" lines
func (t TournamentInfo) Lines() []string {
	values := []string{
		fmt.Sprintf("Season: %s", t.Season),
		fmt.Sprintf("Brackets submitted: %d", t.Entries),
		fmt.Sprintf("Games decided: %d/63", t.ResolvedGames),
	}
	if t.Champion != "" {
		values = append(values, fmt.Sprintf("Champion: %s", t.Champion))
	}
	if !t.UpdatedAt.IsZero() {
		values = append(values, fmt.Sprintf("Results updated: <t:%d:R>", t.UpdatedAt.Unix()))
	}
	if len(t.FailedDays) > 0 {
		values = append(values, fmt.Sprintf("Days missing from results: %s", strings.Join(t.FailedDays, ", ")))
	}
	return values
}

// TickerSource provides the live score ticker
type TickerSource interface {
	FetchTicker(ctx context.Context, day time.Time) ([]external.TickerGame, error)
}
