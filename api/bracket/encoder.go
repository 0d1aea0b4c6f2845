/* encoder.go
 * Contains the Encoder, which converts raw tournament game results into the canonical 63 slot master bracket and
 * elimination list consumed by the scoring engine.
 */

package bracket

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Side is one team in a game as reported by the results source
type Side struct {
	Name   string // short display name, e.g. "Duke"
	Seed   string
	Score  string
	Winner bool
}

// TeamID returns the identifier used in picks and the master bracket, e.g. "1 Duke"
func (s Side) TeamID() string {
	return s.Seed + " " + s.Name
}

// GameResult is a single tournament game. BracketID is the round code followed by the two digit game number within
// the round (e.g. "201"). Region is empty for Final Four and Championship games.
type GameResult struct {
	BracketID string
	Region    string
	Away      Side
	Home      Side
}

// Decided returns the winning and losing sides, or ok=false if the game has no winner yet
func (g GameResult) Decided() (winner Side, loser Side, ok bool) {
	switch {
	case g.Away.Winner && !g.Home.Winner:
		return g.Away, g.Home, true
	case g.Home.Winner && !g.Away.Winner:
		return g.Home, g.Away, true
	default:
		return Side{}, Side{}, false
	}
}

// Bracket holds the winner and loser of every slot. Empty strings are unresolved slots.
type Bracket struct {
	Master [NumSlots]string
	Elim   [NumSlots]string
}

// Resolved reports whether slot has a known winner
func (b Bracket) Resolved(slot int) bool {
	return slot >= 0 && slot < NumSlots && b.Master[slot] != ""
}

// ResolvedCount returns the number of slots with a known winner
func (b Bracket) ResolvedCount() int {
	count := 0
	for _, team := range b.Master {
		if team != "" {
			count++
		}
	}
	return count
}

// Snapshot is an encoded bracket together with the first round field and the days that could not be fetched
type Snapshot struct {
	Bracket    Bracket
	Teams      [NumTeams]string
	FailedDays []string
	UpdatedAt  time.Time
}

// LookupError is returned when a team or region cannot be resolved while encoding. It means the results data is
// inconsistent and the encoded bracket cannot be trusted.
type LookupError struct {
	Table     string // "region", "team" or "name"
	Key       string
	BracketID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("bracket %s: no %s entry for %q", e.BracketID, e.Table, e.Key)
}

// Encoder converts game results into a Bracket using a fixed region and round code configuration
type Encoder struct {
	cfg Config
}

// NewEncoder returns an Encoder for cfg
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Config returns the configuration the encoder was built with
func (e *Encoder) Config() Config {
	return e.cfg
}

// ParseBracketID splits a bracket id such as "203" into its round code ('2') and game number (3)
func ParseBracketID(id string) (byte, int, error) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return 0, 0, fmt.Errorf("bracket id %q is too short", id)
	}
	game, err := strconv.Atoi(id[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("bracket id %q has a non numeric game number: %w", id, err)
	}
	return id[0], game, nil
}

// slotFor resolves the slot of a game, ok is false for games outside the 63 game bracket (the First Four)
func (e *Encoder) slotFor(g GameResult) (int, Round, bool, error) {
	code, game, err := ParseBracketID(g.BracketID)
	if err != nil {
		return 0, 0, false, err
	}
	r, ok := e.cfg.RoundForCode(code)
	if !ok {
		return 0, 0, false, nil
	}
	slot, err := SlotIndex(r, game)
	if err != nil {
		return 0, 0, false, fmt.Errorf("bracket id %q: %w", g.BracketID, err)
	}
	return slot, r, true, nil
}

// teamIndex is the key table used to resolve teams. Keys are region digit + seed.
type teamIndex struct {
	names   map[string]string // key -> team id
	regions map[string]string // team name -> region
}

type placedGame struct {
	game  GameResult
	slot  int
	round Round
}

// place resolves the slot of every game in the bracket and returns them in slot order
func (e *Encoder) place(games []GameResult) ([]placedGame, error) {
	placed := make([]placedGame, 0, len(games))
	for _, g := range games {
		if g.BracketID == "" {
			continue
		}
		slot, r, ok, err := e.slotFor(g)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		placed = append(placed, placedGame{game: g, slot: slot, round: r})
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].slot < placed[j].slot
	})
	return placed, nil
}

// buildIndex builds the key table from the regional rounds. Earlier rounds win when two games disagree on a key.
func (e *Encoder) buildIndex(placed []placedGame) (teamIndex, error) {
	idx := teamIndex{
		names:   make(map[string]string),
		regions: make(map[string]string),
	}
	for _, p := range placed {
		if p.round > EliteEight {
			continue
		}
		digit, ok := e.cfg.RegionDigit(p.game.Region)
		if !ok {
			return teamIndex{}, &LookupError{Table: "region", Key: p.game.Region, BracketID: p.game.BracketID}
		}
		for _, side := range []Side{p.game.Away, p.game.Home} {
			if side.Name == "" || side.Seed == "" {
				continue
			}
			key := string(digit) + side.Seed
			if _, exists := idx.names[key]; !exists {
				idx.names[key] = side.TeamID()
			}
			if _, exists := idx.regions[side.Name]; !exists {
				idx.regions[side.Name] = normaliseRegion(p.game.Region)
			}
		}
	}
	return idx, nil
}

// key returns the sub-bracket key for a side. Regional rounds use the game's region, national rounds use the region
// the team came from.
func (e *Encoder) key(idx teamIndex, p placedGame, side Side) (string, error) {
	region := p.game.Region
	if p.round > EliteEight {
		var ok bool
		region, ok = idx.regions[side.Name]
		if !ok {
			return "", &LookupError{Table: "team", Key: side.Name, BracketID: p.game.BracketID}
		}
	}
	digit, ok := e.cfg.RegionDigit(region)
	if !ok {
		return "", &LookupError{Table: "region", Key: region, BracketID: p.game.BracketID}
	}
	return string(digit) + side.Seed, nil
}

func (e *Encoder) resolve(idx teamIndex, p placedGame, side Side) (string, error) {
	k, err := e.key(idx, p, side)
	if err != nil {
		return "", err
	}
	team, ok := idx.names[k]
	if !ok || team != side.TeamID() {
		return "", &LookupError{Table: "name", Key: k, BracketID: p.game.BracketID}
	}
	return team, nil
}

// Encode converts game results into the master bracket and elimination list
// Preconditions: Receives every game result known so far, in any order. Unplayed games may be included.
// Postconditions: Returns a Bracket where slot i holds the winner (Master) and loser (Elim) of game i, with unplayed
// games left empty, or a *LookupError if any team in a decided game cannot be resolved
func (e *Encoder) Encode(games []GameResult) (Bracket, error) {
	return e.encode(games, false)
}

// EncodePartial encodes results that are missing some tournament days. A Final Four or Championship game whose teams
// cannot be traced back to a region, because their regional games were on a missing day, is left unresolved instead
// of failing. Every other lookup failure is still returned as a *LookupError.
func (e *Encoder) EncodePartial(games []GameResult) (Bracket, error) {
	return e.encode(games, true)
}

func (e *Encoder) encode(games []GameResult, partial bool) (Bracket, error) {
	var b Bracket

	placed, err := e.place(games)
	if err != nil {
		return Bracket{}, err
	}
	idx, err := e.buildIndex(placed)
	if err != nil {
		return Bracket{}, err
	}

	for _, p := range placed {
		winner, loser, ok := p.game.Decided()
		if !ok {
			continue
		}
		winnerID, err := e.resolve(idx, p, winner)
		if err == nil {
			var loserID string
			loserID, err = e.resolve(idx, p, loser)
			if err == nil {
				b.Master[p.slot] = winnerID
				b.Elim[p.slot] = loserID
				continue
			}
		}
		if partial && missingRegion(p, err) {
			continue
		}
		return Bracket{}, err
	}
	return b, nil
}

// missingRegion reports whether err is a national round team with no regional game to take its region from
func missingRegion(p placedGame, err error) bool {
	var lookupErr *LookupError
	return p.round > EliteEight && errors.As(err, &lookupErr) && lookupErr.Table == "team"
}

// Teams returns the 64 team first round field. Each first round game fills two adjacent positions with the better
// seed first. Positions for games missing from the input are left empty.
func (e *Encoder) Teams(games []GameResult) ([NumTeams]string, error) {
	var teams [NumTeams]string

	placed, err := e.place(games)
	if err != nil {
		return teams, err
	}
	for _, p := range placed {
		if p.round != RoundOf64 {
			continue
		}
		first, second := p.game.Away, p.game.Home
		if seedValue(second.Seed) < seedValue(first.Seed) {
			first, second = second, first
		}
		teams[2*p.slot] = first.TeamID()
		teams[2*p.slot+1] = second.TeamID()
	}
	return teams, nil
}

func seedValue(seed string) int {
	v, err := strconv.Atoi(strings.TrimSpace(seed))
	if err != nil {
		return NumTeams
	}
	return v
}
