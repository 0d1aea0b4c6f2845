/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 */

package bot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"bracket-pool/api/api"
	"bracket-pool/api/bracket"
	"bracket-pool/api/external"
	"bracket-pool/api/logic"
	"bracket-pool/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region helpers

func testField() [bracket.NumTeams]string {
	var teams [bracket.NumTeams]string
	for i := range teams {
		teams[i] = fmt.Sprintf("Team %02d", i)
	}
	return teams
}

// chalk returns the bracket where the first listed team wins every game
func chalk(teams [bracket.NumTeams]string) (winners, losers [bracket.NumSlots]string) {
	for slot := 0; slot < bracket.NumSlots; slot++ {
		if r, _ := bracket.RoundOf(slot); r == bracket.RoundOf64 {
			winners[slot], losers[slot] = teams[2*slot], teams[2*slot+1]
			continue
		}
		first, second, _ := bracket.FeederSlots(slot)
		winners[slot], losers[slot] = winners[first], winners[second]
	}
	return winners, losers
}

// newTestAPI returns an api over a mock store where the first round has been played
func newTestAPI() (*api.API, *api.MockStore) {
	teams := testField()
	winners, losers := chalk(teams)
	snap := bracket.Snapshot{Teams: teams}
	copy(snap.Bracket.Master[:32], winners[:32])
	copy(snap.Bracket.Elim[:32], losers[:32])

	ms := api.NewMockStore("2024", snap)
	return api.New(ms, &api.MockTicker{}, api.RankDense, nil), ms
}

func createTestBot() (*Bot, *api.MockStore, *test.Hook) {
	apiPtr, ms := newTestAPI()
	logger, hook := test.NewNullLogger()
	return &Bot{BotToken: "test_token", APIPtr: apiPtr, Log: logger.WithField("component", "bot")}, ms, hook
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

func quoted(picks []string) string {
	parts := make([]string, len(picks))
	for i, pick := range picks {
		parts[i] = `"` + pick + `"`
	}
	return strings.Join(parts, " ")
}

// endregion

// region $help and $details

func TestHelpMessage(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.helpMessageHandler(session, createMockMessage("$help", "user123", "TestUser", "channel123"))

	require.Len(t, session.SentMessages, 1)
	assert.Equal(t, "channel123", session.SentMessages[0].ChannelID)
	for _, cmd := range commands {
		if cmd.name == "$help" {
			continue
		}
		assert.Contains(t, session.LastContent(), cmd.name)
	}
}

func TestDetails(t *testing.T) {
	b, ms, _ := createTestBot()
	ms.Entries["1"] = shared.Entry{UserID: "1"}
	session := NewMockDiscordSession()

	b.detailsHandler(session, createMockMessage("$details", "user123", "TestUser", "channel123"))

	content := session.LastContent()
	assert.Contains(t, content, "Season: 2024")
	assert.Contains(t, content, "Brackets submitted: 1")
	assert.Contains(t, content, "Games decided: 32/63")
}

func TestDetails_APIError(t *testing.T) {
	b, ms, hook := createTestBot()
	ms.GetResultsError = errors.New("database unavailable")
	session := NewMockDiscordSession()

	b.detailsHandler(session, createMockMessage("$details", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An unexpected error occured", session.LastContent())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

// endregion

// region $set

func TestSetBracket_Success(t *testing.T) {
	b, ms, _ := createTestBot()
	session := NewMockDiscordSession()
	winners, _ := chalk(testField())

	b.setBracketHandler(session, createMockMessage("$set "+quoted(winners[:]), "user123", "TestUser", "channel123"))

	assert.Equal(t, "TestUser's bracket has been updated\n", session.LastContent())
	require.Contains(t, ms.Entries, "user123")
	assert.Equal(t, logic.PicksComplete, logic.ParsePicks(ms.Entries["user123"].Picks).State)
}

func TestSetBracket_PartialWithMarkers(t *testing.T) {
	b, ms, _ := createTestBot()
	session := NewMockDiscordSession()
	winners, _ := chalk(testField())
	picks := append([]string{}, winners[:32]...)
	picks[1] = "*"

	b.setBracketHandler(session, createMockMessage("$set "+quoted(picks), "user123", "TestUser", "channel123"))

	assert.Equal(t, "TestUser's bracket has been updated\n", session.LastContent())
	parsed := logic.ParsePicks(ms.Entries["user123"].Picks)
	assert.Equal(t, logic.PicksIncomplete, parsed.State)
	assert.Equal(t, "Team 00", parsed.Teams[0])
	assert.Empty(t, parsed.Teams[1])
}

func TestSetBracket_InvalidTeam(t *testing.T) {
	b, ms, _ := createTestBot()
	session := NewMockDiscordSession()

	b.setBracketHandler(session, createMockMessage(`$set "Team 00" Gonzaga`, "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "TestUser's bracket was not updated")
	assert.Contains(t, session.LastContent(), "Gonzaga")
	assert.Empty(t, ms.Entries)
}

func TestSetBracket_NoPicks(t *testing.T) {
	b, ms, _ := createTestBot()
	session := NewMockDiscordSession()

	b.setBracketHandler(session, createMockMessage("$set", "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "Usage")
	assert.Empty(t, ms.Entries)
}

func TestSetBracket_NoTeamsYet(t *testing.T) {
	b, ms, _ := createTestBot()
	ms.Snapshot = bracket.Snapshot{}
	session := NewMockDiscordSession()

	b.setBracketHandler(session, createMockMessage(`$set "Team 00"`, "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "has not been announced")
}

func TestSetBracket_StoreError(t *testing.T) {
	b, ms, hook := createTestBot()
	ms.StoreEntryError = errors.New("database unavailable")
	session := NewMockDiscordSession()

	b.setBracketHandler(session, createMockMessage(`$set "Team 00"`, "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occured setting TestUser's bracket", session.LastContent())
	assert.Equal(t, "user123", hook.LastEntry().Data["userid"])
}

// endregion

// region $check, $leaderboard, $final4

func TestCheckBracket_NoBracket(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.checkBracketHandler(session, createMockMessage("$check", "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "TestUser does not have a bracket stored")
}

func TestCheckBracket_WithBracket(t *testing.T) {
	b, ms, _ := createTestBot()
	winners, _ := chalk(testField())
	ms.Entries["user123"] = shared.Entry{UserID: "user123", Username: "TestUser", Picks: logic.EncodePicks(winners[:])}
	session := NewMockDiscordSession()

	b.checkBracketHandler(session, createMockMessage("$check", "user123", "TestUser", "channel123"))

	content := session.LastContent()
	assert.Contains(t, content, "Rank: 1")
	assert.Contains(t, content, "Score: 32/192")
	assert.Contains(t, content, "Potential: 192")
}

func TestCheckBracket_GenericError(t *testing.T) {
	b, ms, hook := createTestBot()
	ms.GetEntryError = errors.New("connection reset")
	session := NewMockDiscordSession()

	b.checkBracketHandler(session, createMockMessage("$check", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occured checking TestUser's bracket", session.LastContent())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLeaderboard(t *testing.T) {
	b, ms, _ := createTestBot()
	winners, _ := chalk(testField())
	ms.Entries["user123"] = shared.Entry{UserID: "user123", Username: "TestUser", Picks: logic.EncodePicks(winners[:])}
	session := NewMockDiscordSession()

	b.leaderboardHandler(session, createMockMessage("$leaderboard", "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "1. TestUser, 32 points (32 correct), potential 192")
}

func TestLeaderboard_APIError(t *testing.T) {
	b, ms, _ := createTestBot()
	ms.GetAllEntriesError = errors.New("database unavailable")
	session := NewMockDiscordSession()

	b.leaderboardHandler(session, createMockMessage("$leaderboard", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occurred getting the leaderboard", session.LastContent())
}

func TestLeaderboard_ShowsTypingBeforeReply(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.leaderboardHandler(session, createMockMessage("$leaderboard", "user123", "TestUser", "channel123"))

	assert.Equal(t, []string{"channel123"}, session.TypingChannels)
	require.Len(t, session.SentMessages, 1)
}

func TestLeaderboard_TypingFailureStillReplies(t *testing.T) {
	b, _, hook := createTestBot()
	session := NewMockDiscordSession()
	session.TypingError = errors.New("missing permissions")

	b.leaderboardHandler(session, createMockMessage("$leaderboard", "user123", "TestUser", "channel123"))

	require.Len(t, session.SentMessages, 1)
	assert.Empty(t, session.TypingChannels)
	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "failed to show typing indicator" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestHelp_NoTypingIndicator(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.helpMessageHandler(session, createMockMessage("$help", "user123", "TestUser", "channel123"))

	assert.Empty(t, session.TypingChannels)
}

func TestFinalFour(t *testing.T) {
	b, ms, _ := createTestBot()
	winners, _ := chalk(testField())
	ms.Entries["user123"] = shared.Entry{UserID: "user123", Picks: logic.EncodePicks(winners[:])}
	session := NewMockDiscordSession()

	b.finalFourHandler(session, createMockMessage("$final4", "user123", "TestUser", "channel123"))

	content := session.LastContent()
	assert.Contains(t, content, "Final Four: Team 00, Team 16, Team 32, Team 48")
	assert.Contains(t, content, "Championship: Team 00 vs Team 32")
	assert.Contains(t, content, "Champion: Team 00")
}

func TestFinalFour_NoBracket(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.finalFourHandler(session, createMockMessage("$final4", "user123", "TestUser", "channel123"))

	assert.Contains(t, session.LastContent(), "does not have a bracket stored")
}

func TestFormatEndRounds(t *testing.T) {
	assert.Equal(t, "TestUser has not made any picks yet", formatEndRounds("TestUser", []string{}))

	content := formatEndRounds("TestUser", []string{"A.png", "", "C.png", "D.png", "A.png", "", ""})
	assert.Contains(t, content, "Final Four: A, TBD, C, D")
	assert.Contains(t, content, "Championship: A vs TBD")
	assert.Contains(t, content, "Champion: TBD")
}

// endregion

// region $teams and $scores

func TestTeams(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.teamsHandler(session, createMockMessage("$teams", "user123", "TestUser", "channel123"))

	content := session.LastContent()
	assert.Contains(t, content, "1. Team 00 vs Team 01\n")
	assert.Contains(t, content, "32. Team 62 vs Team 63\n")
}

func TestTeams_NotAnnounced(t *testing.T) {
	b, ms, _ := createTestBot()
	ms.Snapshot = bracket.Snapshot{}
	session := NewMockDiscordSession()

	b.teamsHandler(session, createMockMessage("$teams", "user123", "TestUser", "channel123"))

	assert.Equal(t, "The bracket has not been announced yet", session.LastContent())
}

func TestTeams_APIError(t *testing.T) {
	b, ms, _ := createTestBot()
	ms.GetResultsError = errors.New("database unavailable")
	session := NewMockDiscordSession()

	b.teamsHandler(session, createMockMessage("$teams", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occured getting the teams list", session.LastContent())
}

func TestScores(t *testing.T) {
	b, _, _ := createTestBot()
	b.APIPtr.Ticker = &api.MockTicker{Games: []external.TickerGame{
		{
			Away:   external.TickerSide{Short: "UConn", Seed: "1", Score: "40"},
			Home:   external.TickerSide{Short: "Stetson", Seed: "16", Score: "21"},
			State:  external.StateLive,
			Status: "HALF",
		},
		{
			Away:   external.TickerSide{Short: "Duke", Seed: "4"},
			Home:   external.TickerSide{Short: "Vermont", Seed: "13"},
			State:  external.StatePre,
			Status: time.Date(2024, time.March, 22, 19, 0, 0, 0, time.UTC).Format("3:04PM"),
		},
		{
			Away:  external.TickerSide{Short: "Houston", Seed: "1", Score: "86", Winner: true},
			Home:  external.TickerSide{Short: "Longwood", Seed: "16", Score: "46"},
			State: external.StateFinal,
		},
	}}
	session := NewMockDiscordSession()

	b.scoresHandler(session, createMockMessage("$scores", "user123", "TestUser", "channel123"))

	content := session.LastContent()
	assert.Contains(t, content, "(1) UConn 40 - 21 (16) Stetson, HALF")
	assert.Contains(t, content, "(4) Duke vs (13) Vermont, 7:00PM")
	assert.Contains(t, content, "**(1) Houston** 86 - 46 (16) Longwood, Final")
}

func TestScores_NoGames(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.scoresHandler(session, createMockMessage("$scores", "user123", "TestUser", "channel123"))

	assert.Equal(t, "No tournament games today", session.LastContent())
}

func TestScores_APIError(t *testing.T) {
	b, _, _ := createTestBot()
	b.APIPtr.Ticker = &api.MockTicker{Err: errors.New("upstream down")}
	session := NewMockDiscordSession()

	b.scoresHandler(session, createMockMessage("$scores", "user123", "TestUser", "channel123"))

	assert.Equal(t, "An error occured getting the scores", session.LastContent())
}

// endregion

// region routing

func TestNewMessage_IgnoresBotMessages(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	b.newMessageHandler(session, createMockMessage("$help", "bot123", "PoolBot", "channel123"), "bot123")

	assert.Empty(t, session.SentMessages)
}

func TestNewMessage_IgnoresUnknownCommands(t *testing.T) {
	b, _, _ := createTestBot()
	session := NewMockDiscordSession()

	for _, content := range []string{"$unknown", "hello $help", "$helpme", "help"} {
		b.newMessageHandler(session, createMockMessage(content, "user123", "TestUser", "channel123"), "bot123")
	}

	assert.Empty(t, session.SentMessages)
}

func TestNewMessage_RoutesCommands(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"$help", "Bracket Pool Bot"},
		{"$details", "Season: 2024"},
		{`$set "Gonzaga"`, "was not updated"},
		{"$check", "does not have a bracket stored"},
		{"$leaderboard", "No brackets have been submitted yet"},
		{"$teams", "The first round games are"},
		{"$final4", "does not have a bracket stored"},
		{"$scores", "No tournament games today"},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			b, _, _ := createTestBot()
			session := NewMockDiscordSession()

			b.newMessageHandler(session, createMockMessage(tt.content, "user123", "TestUser", "channel123"), "bot123")

			require.Len(t, session.SentMessages, 1)
			assert.Contains(t, session.LastContent(), tt.want)
		})
	}
}

func TestSend_LogsDiscordErrors(t *testing.T) {
	b, _, hook := createTestBot()
	session := NewMockDiscordSession()
	session.ErrorToReturn = errors.New("missing permissions")

	b.helpMessageHandler(session, createMockMessage("$help", "user123", "TestUser", "channel123"))

	assert.Empty(t, session.SentMessages)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "failed to send message", hook.LastEntry().Message)
	assert.Equal(t, "channel123", hook.LastEntry().Data["channel"])
}

func TestMockSession_MessagesIn(t *testing.T) {
	session := NewMockDiscordSession()
	session.ChannelMessageSend("a", "one")
	session.ChannelMessageSend("b", "two")
	session.ChannelMessageSend("a", "three")

	assert.Equal(t, []string{"one", "three"}, session.MessagesIn("a"))
	assert.Equal(t, "three", session.LastContent())
}

// endregion
