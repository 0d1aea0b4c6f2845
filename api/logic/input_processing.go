/* input_processing.go
 * Contains the logic for processing user input: team name matching, bracket validation and the $check report
 */

package logic

import (
	"fmt"
	"strings"

	"bracket-pool/api/bracket"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// forbiddenPickChars cannot appear in a team name because they are part of the stored pick format
const forbiddenPickChars = `,"[]*`

// CheckTeamNames processes team names from user input and checks if they are valid.
// Preconditions: receives two string slices; one containing the user's picks and another that is a list of valid team ids
// Postconditions: returns two string slices, a slice of correctly formatted team ids and slice of strings containing the invalid team names
func CheckTeamNames(pickTeams []string, validTeams []string) ([]string, []string) {
	var formattedTeamNames []string
	var invalidTeams []string

	lookup := make(map[string]string)
	var validTeamsLower []string
	for _, name := range validTeams {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		lookup[lower] = name
		validTeamsLower = append(validTeamsLower, lower)
	}

	for _, team := range pickTeams {
		lowerTeam := strings.ToLower(strings.TrimSpace(team))
		if original, ok := lookup[lowerTeam]; ok {
			formattedTeamNames = append(formattedTeamNames, original)
			continue
		}
		fuzzyResults := fuzzy.RankFind(lowerTeam, validTeamsLower)
		if len(fuzzyResults) == 0 {
			invalidTeams = append(invalidTeams, team)
			continue
		}
		// closest match wins when the input is ambiguous
		best := fuzzyResults[0]
		for _, r := range fuzzyResults[1:] {
			if r.Distance < best.Distance {
				best = r
			}
		}
		formattedTeamNames = append(formattedTeamNames, lookup[best.Target])
	}
	return formattedTeamNames, invalidTeams
}

// ValidateBracket checks that a pick sequence is a consistent bracket
// Preconditions: Receives parsed picks and the 64 team first round field
// Postconditions: Returns nil if every round of 64 pick is one of the two teams in that game and every later pick is one of
// the two picks feeding into it. Unpicked slots are allowed, the state of the picks decides whether they count.
func ValidateBracket(picks Picks, teams [bracket.NumTeams]string) error {
	var problems []string
	for slot, team := range picks.Teams {
		if team == "" {
			continue
		}
		if strings.ContainsAny(team, forbiddenPickChars) {
			problems = append(problems, fmt.Sprintf("game %d: %q contains one of %s", slot+1, team, forbiddenPickChars))
			continue
		}

		var options [2]string
		if r, _ := bracket.RoundOf(slot); r == bracket.RoundOf64 {
			options = [2]string{teams[2*slot], teams[2*slot+1]}
		} else {
			first, second, _ := bracket.FeederSlots(slot)
			options = [2]string{picks.Teams[first], picks.Teams[second]}
		}
		if team != options[0] && team != options[1] {
			problems = append(problems, fmt.Sprintf("game %d: %q is not one of %q or %q", slot+1, team, options[0], options[1]))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid bracket: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Report builds the summary shown to a user checking their bracket
// Preconditions: Receives the username, their score, potential and leaderboard rank (0 if unranked)
// Postconditions: Returns a multi line string with the total, per round breakdown and potential
func Report(username string, score ScoreTuple, potential Potential, rank int) string {
	var response strings.Builder

	fmt.Fprintf(&response, "%s's bracket\n", username)
	if rank > 0 {
		fmt.Fprintf(&response, "Rank: %d\n", rank)
	}
	fmt.Fprintf(&response, "Score: %d/%d (%d correct picks)\n", score.Total, bracket.MaxScore, score.Games)
	for _, r := range bracket.Rounds() {
		fmt.Fprintf(&response, "[%s] %d/%d\n", r, score.Round(r), r.Games()*r.Weight())
	}
	fmt.Fprintf(&response, "Potential: %s\n", potential)
	if potential.Valid && potential.Loss.Points > 0 {
		fmt.Fprintf(&response, "Lost: %d points (%d games decided against you, %d picks already eliminated)\n",
			potential.Loss.Points, potential.Loss.Falsified, potential.Loss.Eliminated)
	}
	return response.String()
}
