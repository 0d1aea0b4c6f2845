/* scoring.go
 * Contains the scoring engine: points per round, potential, ordering and ranking of entries. Everything in this file is
 * a pure function of the master bracket, elimination list and the entries passed in.
 */

package logic

import (
	"fmt"
	"sort"

	"bracket-pool/api/bracket"
	"bracket-pool/api/shared"
)

// ScoreTuple is a user's points in each round, their total, and the number of games they have picked correctly
type ScoreTuple struct {
	Rounds [6]int
	Total  int
	Games  int
}

// Round returns the points scored in round r
func (s ScoreTuple) Round(r bracket.Round) int {
	if !r.Valid() {
		return 0
	}
	return s.Rounds[r-1]
}

// ScorePicks scores a single pick sequence against the master bracket. A slot scores when the pick equals the master
// entry and the slot has been decided.
func ScorePicks(master [bracket.NumSlots]string, picks Picks) ScoreTuple {
	var s ScoreTuple
	if picks.State == PicksEmpty {
		return s
	}
	for slot, team := range picks.Teams {
		if team == "" || master[slot] == "" || team != master[slot] {
			continue
		}
		r, _ := bracket.RoundOf(slot)
		s.Rounds[r-1] += r.Weight()
		s.Total += r.Weight()
		s.Games++
	}
	return s
}

// Scores calculates the score of every entry
// Preconditions: Receives the master bracket and the entries to score
// Postconditions: Returns one ScoreTuple per entry in the same order. Entries without picks get a zero tuple.
func Scores(master [bracket.NumSlots]string, entries []shared.Entry) []ScoreTuple {
	scores := make([]ScoreTuple, len(entries))
	for i, entry := range entries {
		scores[i] = ScorePicks(master, ParsePicks(entry.Picks))
	}
	return scores
}

// LossBreakdown counts the slots a user can no longer score. Falsified slots have been decided against the pick,
// Eliminated slots are undecided but the picked team is already out. Overlap counts falsified slots whose pick is
// also eliminated; these are charged once.
type LossBreakdown struct {
	Falsified  int
	Eliminated int
	Overlap    int
	Points     int
}

// Potential is the highest total a user can still reach. Valid is false when the user has not submitted a complete
// bracket and there is no meaningful potential.
type Potential struct {
	Value int
	Valid bool
	Loss  LossBreakdown
}

func (p Potential) String() string {
	if !p.Valid {
		return "None"
	}
	return fmt.Sprint(p.Value)
}

// eliminatedSet returns the set of teams that have lost a game
func eliminatedSet(elim [bracket.NumSlots]string) map[string]struct{} {
	out := make(map[string]struct{}, bracket.NumSlots)
	for _, team := range elim {
		if team != "" {
			out[team] = struct{}{}
		}
	}
	return out
}

// PotentialOf calculates the potential of a single pick sequence
func PotentialOf(elim [bracket.NumSlots]string, master [bracket.NumSlots]string, picks Picks) Potential {
	if picks.State != PicksComplete {
		return Potential{}
	}
	return potentialWith(eliminatedSet(elim), master, picks)
}

func potentialWith(out map[string]struct{}, master [bracket.NumSlots]string, picks Picks) Potential {
	var loss LossBreakdown
	for slot, team := range picks.Teams {
		_, isOut := out[team]
		switch {
		case master[slot] != "":
			// decided slots are either already banked or lost for good
			if team == master[slot] {
				continue
			}
			loss.Falsified++
			if isOut {
				loss.Overlap++
			}
		case isOut:
			loss.Eliminated++
		default:
			continue
		}
		loss.Points += bracket.WeightOf(slot)
	}
	return Potential{Value: bracket.MaxScore - loss.Points, Valid: true, Loss: loss}
}

// Potentials calculates the potential of every entry
// Preconditions: Receives the elimination list, the entries and the master bracket
// Postconditions: Returns one Potential per entry in the same order. Entries that are empty or incomplete get an
// invalid Potential rather than a number.
func Potentials(elim [bracket.NumSlots]string, entries []shared.Entry, master [bracket.NumSlots]string) []Potential {
	out := eliminatedSet(elim)
	potentials := make([]Potential, len(entries))
	for i, entry := range entries {
		picks := ParsePicks(entry.Picks)
		if picks.State != PicksComplete {
			continue
		}
		potentials[i] = potentialWith(out, master, picks)
	}
	return potentials
}

// Order returns entry indices sorted by total score, highest first. Entries with equal totals keep their input order.
func Order(scores []ScoreTuple) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]].Total > scores[order[j]].Total
	})
	return order
}

// Rank returns the dense rank of each position in order: tied totals share a rank and the next distinct total is
// ranked one higher. The result is parallel to order, not to scores. CompetitionRank is the gapped alternative, the
// RANK_STYLE setting picks which one the leaderboard uses.
func Rank(order []int, scores []ScoreTuple) []int {
	ranks := make([]int, len(order))
	current := 1
	for pos, idx := range order {
		if pos > 0 && scores[idx].Total != scores[order[pos-1]].Total {
			current++
		}
		ranks[pos] = current
	}
	return ranks
}

// CompetitionRank is Rank with gaps after ties ("1224" ranking): a position's rank is one more than the number of
// entries with a strictly higher total. Parallel to order.
func CompetitionRank(order []int, scores []ScoreTuple) []int {
	ranks := make([]int, len(order))
	for pos, idx := range order {
		if pos > 0 && scores[idx].Total == scores[order[pos-1]].Total {
			ranks[pos] = ranks[pos-1]
			continue
		}
		ranks[pos] = pos + 1
	}
	return ranks
}

// endRoundsStart is the first Elite 8 slot; the end rounds run from here to the championship
var endRoundsStart = bracket.EliteEight.Offset()

// EndRounds returns each entry's Elite 8, Final Four and Championship picks as image file names ("1 Duke.png"). Entries
// without picks get an empty list, unpicked slots an empty string.
func EndRounds(entries []shared.Entry) [][]string {
	rounds := make([][]string, len(entries))
	for i, entry := range entries {
		rounds[i] = EndRoundsOf(ParsePicks(entry.Picks))
	}
	return rounds
}

// EndRoundsOf returns the end round image names of a single pick sequence
func EndRoundsOf(picks Picks) []string {
	if picks.State == PicksEmpty {
		return []string{}
	}
	images := make([]string, 0, bracket.NumSlots-endRoundsStart)
	for _, team := range picks.Teams[endRoundsStart:] {
		if team == "" {
			images = append(images, "")
			continue
		}
		images = append(images, team+".png")
	}
	return images
}
