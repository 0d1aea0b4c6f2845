/* source.go
 * Contains the Source, which assembles a bracket snapshot from every tournament day
 */

package external

import (
	"context"
	"fmt"
	"time"

	"bracket-pool/api/bracket"
)

// Source builds bracket snapshots from the NCAA scoreboard for a fixed set of tournament days
type Source struct {
	client  *Client
	encoder *bracket.Encoder
	days    []time.Time
	now     func() time.Time
}

func NewSource(client *Client, encoder *bracket.Encoder, days []time.Time) *Source {
	return &Source{client: client, encoder: encoder, days: days, now: time.Now}
}

// FetchSnapshot fetches every tournament day and encodes the results
// Preconditions: Receives a context
// Postconditions: Returns the encoded master bracket, elimination list and first round field. Days that could not be
// fetched are listed in FailedDays and their games, along with any later game that cannot be traced back to a
// region without them, are left unresolved. Returns an error if the context is cancelled or the results cannot be
// encoded.
func (s *Source) FetchSnapshot(ctx context.Context) (bracket.Snapshot, error) {
	report, err := s.client.FetchTournament(ctx, s.days)
	if err != nil {
		return bracket.Snapshot{}, fmt.Errorf("error fetching tournament: %w", err)
	}

	encode := s.encoder.Encode
	if len(report.FailedDays) > 0 {
		// national games may reference teams whose regional games are on a missing day
		encode = s.encoder.EncodePartial
	}
	b, err := encode(report.Games)
	if err != nil {
		return bracket.Snapshot{}, fmt.Errorf("error encoding bracket: %w", err)
	}
	teams, err := s.encoder.Teams(report.Games)
	if err != nil {
		return bracket.Snapshot{}, fmt.Errorf("error building bracket teams: %w", err)
	}

	return bracket.Snapshot{
		Bracket:    b,
		Teams:      teams,
		FailedDays: report.FailedDays,
		UpdatedAt:  s.now().UTC(),
	}, nil
}

// FetchTicker returns the score ticker for a day
func (s *Source) FetchTicker(ctx context.Context, day time.Time) ([]TickerGame, error) {
	sb, err := s.client.FetchScoreboard(ctx, day)
	if err != nil {
		return nil, err
	}
	return Ticker(sb), nil
}

// Days returns the tournament days the source fetches
func (s *Source) Days() []time.Time {
	return append([]time.Time(nil), s.days...)
}
