/* models.go
 * Contains the structs the NCAA scoreboard json is decoded into, and the types returned to higher level functions
 */

package external

import "bracket-pool/api/bracket"

// Scoreboard is a single day of the NCAA scoreboard
type Scoreboard struct {
	UpdatedAt string        `json:"updated_at"`
	Games     []GameWrapper `json:"games"`
}

// GameWrapper matches the {"game": {...}} nesting of the scoreboard json
type GameWrapper struct {
	Game Game `json:"game"`
}

type Game struct {
	GameID         string   `json:"gameID"`
	Away           TeamInfo `json:"away"`
	Home           TeamInfo `json:"home"`
	GameState      string   `json:"gameState"`
	StartTime      string   `json:"startTime"`
	StartTimeEpoch string   `json:"startTimeEpoch"`
	CurrentPeriod  string   `json:"currentPeriod"`
	ContestClock   string   `json:"contestClock"`
	BracketID      string   `json:"bracketId"`
	BracketRegion  string   `json:"bracketRegion"`
	BracketRound   string   `json:"bracketRound"`
	URL            string   `json:"url"`
}

type TeamInfo struct {
	Names       TeamNames `json:"names"`
	Score       string    `json:"score"`
	Seed        string    `json:"seed"`
	Winner      bool      `json:"winner"`
	Description string    `json:"description"`
}

type TeamNames struct {
	Char6 string `json:"char6"`
	Short string `json:"short"`
	SEO   string `json:"seo"`
	Full  string `json:"full"`
}

// Game states reported by the scoreboard
const (
	StateLive  = "live"
	StatePre   = "pre"
	StateFinal = "final"
)

// TickerSide is one team's line on the score ticker
type TickerSide struct {
	Char6       string `json:"char6"`
	Short       string `json:"short"`
	SEO         string `json:"seo"`
	Seed        string `json:"seed"`
	Score       string `json:"score"`
	Winner      bool   `json:"winner"`
	Description string `json:"description"`
}

// TickerGame is a tournament game as shown on the score ticker. Status is the period and clock for live games, the
// start time for games not yet played and empty once final.
type TickerGame struct {
	Away      TickerSide `json:"away"`
	Home      TickerSide `json:"home"`
	State     string     `json:"state"`
	Status    string     `json:"status"`
	BracketID string     `json:"bracketId"`
	URL       string     `json:"url"`
}

// DayReport is the outcome of fetching a set of tournament days. Games from days that failed are missing.
type DayReport struct {
	Games      []bracket.GameResult
	FailedDays []string
}
