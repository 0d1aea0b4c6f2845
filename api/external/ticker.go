/* ticker.go
 * Contains the live score ticker built from a day's scoreboard
 */

package external

import (
	"sort"
)

// periods where the game clock is not shown
var clocklessPeriods = map[string]bool{"HALF": true, "END 2ND": true}

var stateOrder = map[string]int{StateLive: 0, StatePre: 1, StateFinal: 2}

func stateRank(state string) int {
	if r, ok := stateOrder[state]; ok {
		return r
	}
	return len(stateOrder)
}

// Ticker returns the tournament games on a scoreboard, live games first, then upcoming games, then final games. Games
// in the same state keep their scoreboard order.
func Ticker(sb Scoreboard) []TickerGame {
	games := make([]TickerGame, 0, len(sb.Games))
	for _, w := range sb.Games {
		g := w.Game
		if g.BracketID == "" {
			continue
		}
		games = append(games, TickerGame{
			Away:      tickerSide(g.Away),
			Home:      tickerSide(g.Home),
			State:     g.GameState,
			Status:    status(g),
			BracketID: g.BracketID,
			URL:       g.URL,
		})
	}
	sort.SliceStable(games, func(i, j int) bool {
		return stateRank(games[i].State) < stateRank(games[j].State)
	})
	return games
}

func status(g Game) string {
	switch g.GameState {
	case StateLive:
		if clocklessPeriods[g.CurrentPeriod] {
			return g.CurrentPeriod
		}
		return g.CurrentPeriod + " " + g.ContestClock
	case StateFinal:
		return ""
	default:
		return g.StartTime
	}
}

func tickerSide(t TeamInfo) TickerSide {
	return TickerSide{
		Char6:       t.Names.Char6,
		Short:       t.Names.Short,
		SEO:         t.Names.SEO,
		Seed:        t.Seed,
		Score:       t.Score,
		Winner:      t.Winner,
		Description: t.Description,
	}
}
