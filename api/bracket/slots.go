/* slots.go
 * Contains the fixed slot layout of a 64 team single elimination bracket. Every game in the tournament is a single
 * position in a flat 63 element array, and the round a game belongs to is derived purely from its index.
 */

package bracket

import "fmt"

// Round is a tournament round, 1 (Round of 64) through 6 (Championship)
type Round int

const (
	RoundOf64 Round = iota + 1
	RoundOf32
	SweetSixteen
	EliteEight
	FinalFour
	Championship
)

const (
	// NumSlots is the number of games in the tournament
	NumSlots = 63
	// NumTeams is the size of the first round field
	NumTeams = 64
	// MaxScore is the score of a perfect bracket
	MaxScore = 192
)

// roundLayout holds the first slot index, number of games and weight of each round. Index 0 is unused.
var roundLayout = [...]struct {
	offset int
	games  int
	weight int
	name   string
}{
	{},
	{offset: 0, games: 32, weight: 1, name: "Round of 64"},
	{offset: 32, games: 16, weight: 2, name: "Round of 32"},
	{offset: 48, games: 8, weight: 4, name: "Sweet 16"},
	{offset: 56, games: 4, weight: 8, name: "Elite 8"},
	{offset: 60, games: 2, weight: 16, name: "Final Four"},
	{offset: 62, games: 1, weight: 32, name: "Championship"},
}

// Rounds returns every round in tournament order
func Rounds() []Round {
	return []Round{RoundOf64, RoundOf32, SweetSixteen, EliteEight, FinalFour, Championship}
}

// Valid reports whether r is one of the six tournament rounds
func (r Round) Valid() bool {
	return r >= RoundOf64 && r <= Championship
}

// Offset is the slot index of the first game in the round
func (r Round) Offset() int {
	if !r.Valid() {
		return -1
	}
	return roundLayout[r].offset
}

// Games is the number of games played in the round
func (r Round) Games() int {
	if !r.Valid() {
		return 0
	}
	return roundLayout[r].games
}

// Weight is the number of points a correct pick in the round is worth
func (r Round) Weight() int {
	if !r.Valid() {
		return 0
	}
	return roundLayout[r].weight
}

func (r Round) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Round(%d)", int(r))
	}
	return roundLayout[r].name
}

// RoundOf returns the round a slot belongs to
// Preconditions: Receives a slot index
// Postconditions: Returns the round containing the slot, or an error if the index is outside [0,62]
func RoundOf(slot int) (Round, error) {
	if slot < 0 || slot >= NumSlots {
		return 0, fmt.Errorf("slot %d is out of range [0,%d]", slot, NumSlots-1)
	}
	for _, r := range Rounds() {
		if slot < r.Offset()+r.Games() {
			return r, nil
		}
	}
	// unreachable while the layout covers [0,62]
	return 0, fmt.Errorf("slot %d is not covered by any round", slot)
}

// WeightOf returns the points a correct pick at slot is worth, or 0 for an out of range slot
func WeightOf(slot int) int {
	r, err := RoundOf(slot)
	if err != nil {
		return 0
	}
	return r.Weight()
}

// SlotIndex converts a round relative game number (starting at 1) into a flat slot index
// Preconditions: Receives a round and a game number within that round
// Postconditions: Returns offset(round) + game - 1, or an error if either value is out of range
func SlotIndex(r Round, game int) (int, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("invalid round %d", int(r))
	}
	if game < 1 || game > r.Games() {
		return 0, fmt.Errorf("game %d is out of range for %s (1-%d)", game, r, r.Games())
	}
	return r.Offset() + game - 1, nil
}

// NextSlot returns the slot the winner of slot advances to, or -1 for the championship game
func NextSlot(slot int) int {
	r, err := RoundOf(slot)
	if err != nil || r == Championship {
		return -1
	}
	next := r + 1
	return next.Offset() + (slot-r.Offset())/2
}

// FeederSlots returns the two slots whose winners meet in slot. First round games have no feeder slots, and
// ok is false for them.
func FeederSlots(slot int) (first int, second int, ok bool) {
	r, err := RoundOf(slot)
	if err != nil || r == RoundOf64 {
		return 0, 0, false
	}
	prev := r - 1
	first = prev.Offset() + 2*(slot-r.Offset())
	return first, first + 1, true
}
