/* test_helpers_test.go
 * Contains helpers for building fields, brackets and entries in logic tests
 */

package logic

import (
	"fmt"

	"bracket-pool/api/bracket"
	"bracket-pool/api/shared"
)

// testField returns a 64 team field named "t0" to "t63"
func testField() [bracket.NumTeams]string {
	var teams [bracket.NumTeams]string
	for i := range teams {
		teams[i] = fmt.Sprintf("t%d", i)
	}
	return teams
}

// chalk returns the bracket where the first team of every game wins, along with the losers of each game
func chalk(teams [bracket.NumTeams]string) (winners, losers [bracket.NumSlots]string) {
	for slot := 0; slot < bracket.NumSlots; slot++ {
		r, _ := bracket.RoundOf(slot)
		if r == bracket.RoundOf64 {
			winners[slot], losers[slot] = teams[2*slot], teams[2*slot+1]
			continue
		}
		first, second, _ := bracket.FeederSlots(slot)
		winners[slot], losers[slot] = winners[first], winners[second]
	}
	return winners, losers
}

// upsets is chalk with the second team winning every game
func upsets(teams [bracket.NumTeams]string) (winners, losers [bracket.NumSlots]string) {
	for slot := 0; slot < bracket.NumSlots; slot++ {
		r, _ := bracket.RoundOf(slot)
		if r == bracket.RoundOf64 {
			winners[slot], losers[slot] = teams[2*slot+1], teams[2*slot]
			continue
		}
		first, second, _ := bracket.FeederSlots(slot)
		winners[slot], losers[slot] = winners[second], winners[first]
	}
	return winners, losers
}

// upTo blanks every slot from the given slot onwards, leaving a partially played tournament
func upTo(slots [bracket.NumSlots]string, played int) [bracket.NumSlots]string {
	for i := played; i < bracket.NumSlots; i++ {
		slots[i] = ""
	}
	return slots
}

func entryFor(userID string, picks [bracket.NumSlots]string) shared.Entry {
	return shared.Entry{UserID: userID, Username: "user" + userID, Picks: EncodePicks(picks[:])}
}
