/* picks.go
 * Contains the parsing of stored pick strings into a fixed size pick sequence. Picks are stored the way the entry form
 * submits them: a bracketed, quoted, comma separated list, e.g. ["1 Duke","16 Norfolk St",...]. A "*" anywhere in the
 * string marks a submission the user has not finished.
 */

package logic

import (
	"fmt"
	"strings"

	"bracket-pool/api/bracket"
)

// IncompleteMarker is written by the entry form into any slot the user has not picked yet
const IncompleteMarker = "*"

// PickState describes how much of a bracket a user has submitted
type PickState int

const (
	// PicksEmpty is a user with no picks at all, e.g. a freshly registered user
	PicksEmpty PickState = iota
	// PicksIncomplete is a submission with at least one slot missing or marked with IncompleteMarker
	PicksIncomplete
	// PicksComplete is a submission with all 63 slots picked
	PicksComplete
)

func (s PickState) String() string {
	switch s {
	case PicksEmpty:
		return "empty"
	case PicksIncomplete:
		return "incomplete"
	case PicksComplete:
		return "complete"
	default:
		return fmt.Sprintf("PickState(%d)", int(s))
	}
}

// Picks is a parsed pick sequence. Unpicked slots hold the empty string.
type Picks struct {
	State PickState
	Teams [bracket.NumSlots]string
}

var pickCleaner = strings.NewReplacer(`"`, "", "[", "", "]", "")

// ParsePicks parses a stored pick string
// Preconditions: Receives the raw pick string as stored for a user, which may be empty
// Postconditions: Returns Picks with one team per slot. Sequences shorter than 63 are padded with empty slots and
// entries past the 63rd are ignored. Slots holding the incomplete marker are left empty.
func ParsePicks(raw string) Picks {
	var p Picks

	cleaned := strings.TrimSpace(pickCleaner.Replace(raw))
	if cleaned == "" {
		return p
	}

	for i, team := range strings.Split(cleaned, ",") {
		if i >= bracket.NumSlots {
			break
		}
		team = strings.TrimSpace(team)
		if team == IncompleteMarker {
			continue
		}
		p.Teams[i] = team
	}

	p.State = PicksComplete
	if IsBracketEmpty(raw) {
		p.State = PicksIncomplete
	}
	picked := 0
	for _, team := range p.Teams {
		if team != "" {
			picked++
		}
	}
	switch {
	case picked == 0 && p.State == PicksComplete:
		p.State = PicksEmpty
	case picked < bracket.NumSlots:
		p.State = PicksIncomplete
	}
	return p
}

// IsBracketEmpty reports whether a raw pick string contains the incomplete submission marker
func IsBracketEmpty(raw string) bool {
	return strings.Contains(raw, IncompleteMarker)
}

// EncodePicks converts a list of teams into the stored pick string format. Blank teams are written as the incomplete
// marker so the stored string round trips through ParsePicks.
func EncodePicks(teams []string) string {
	quoted := make([]string, len(teams))
	for i, team := range teams {
		team = strings.TrimSpace(team)
		if team == "" {
			team = IncompleteMarker
		}
		quoted[i] = `"` + team + `"`
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// Slice returns the picks as a slice
func (p Picks) Slice() []string {
	return append([]string(nil), p.Teams[:]...)
}
