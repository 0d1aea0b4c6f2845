/* handlers.go
 * Contains the command handlers. They accept the DiscordSession interface so they can be tested without discord
 */

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bracket-pool/api/api"
	"bracket-pool/api/external"
	"bracket-pool/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

const commandTimeout = 30 * time.Second

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Bracket Pool Bot v1.0\n")
	res.WriteString("`$details`: Get information about the pool including season, brackets submitted and games decided\n")
	res.WriteString("`$set team1 ... team63`: Sets your bracket. Picks are in game order: the 32 first round games, then the 16 second round games and so on, ending with your champion\n")
	res.WriteString("Use * for a game you have not picked yet. There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"1 UConn\")\n")
	res.WriteString("`$check`: shows your score, rank and potential\n")
	res.WriteString("`$leaderboard`: shows the users with the best brackets. Games are worth 1, 2, 4, 8, 16 and 32 points by round\n")
	res.WriteString("`$teams`: shows the first round field in bracket order. Use this list to set your bracket\n")
	res.WriteString("`$final4`: shows your Final Four, championship game and champion picks\n")
	res.WriteString("`$scores`: shows today's tournament games, live games first\n")
	b.send(session, message, res.String())
}

// detailsHandler handles the $details command
func (b *Bot) detailsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	info, err := b.APIPtr.GetTournamentInfo(ctx)
	if err != nil {
		b.Log.WithError(err).Error("failed to get tournament info")
		b.send(session, message, "An unexpected error occured")
		return
	}
	b.send(session, message, strings.Join(info.Lines(), "\n"))
}

// setBracketHandler processes the user input for `$set`, validates the bracket and stores it
func (b *Bot) setBracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	res := fmt.Sprintf("%s's bracket has been updated\n", user.Username)

	// splitter keeps quoted team names that contain spaces together, e.g. "1 UConn"
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	msg, err := spaceSplitter.Split(strings.TrimSpace(message.Content))
	if err != nil {
		b.send(session, message, fmt.Sprintf("Could not read %s's picks: %s", user.Username, err))
		return
	}
	var picks []string
	for _, part := range msg[1:] {
		if part = strings.TrimSpace(part); part != "" {
			picks = append(picks, part)
		}
	}
	if len(picks) == 0 {
		b.send(session, message, "Usage: `$set team1 ... team63`. See `$help` for the pick order")
		return
	}

	err = b.APIPtr.SetUserBracket(ctx, user, picks)
	switch {
	case err == nil:
	case errors.Is(err, api.ErrInvalidBracket):
		res = fmt.Sprintf("%s's bracket was not updated, %s", user.Username, err)
	case errors.Is(err, api.ErrNoTeams):
		res = "The bracket has not been announced yet, try again once the field is set"
	default:
		b.Log.WithError(err).WithField("userid", user.UserID).Error("failed to set bracket")
		res = fmt.Sprintf("An error occured setting %s's bracket", user.Username)
	}
	b.send(session, message, res)
}

// checkBracketHandler handles the $check command
func (b *Bot) checkBracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	res, err := b.APIPtr.CheckBracket(ctx, user)
	if err != nil {
		if errors.Is(err, api.ErrNoEntry) {
			res = fmt.Sprintf("%s does not have a bracket stored. Use $set to set your bracket\n", user.Username)
		} else {
			b.Log.WithError(err).WithField("userid", user.UserID).Error("failed to check bracket")
			res = fmt.Sprintf("An error occured checking %s's bracket", user.Username)
		}
	}
	b.send(session, message, res)
}

// leaderboardHandler handles the $leaderboard command
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.typing(session, message)
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	res, err := b.APIPtr.GetLeaderboard(ctx)
	if err != nil {
		b.Log.WithError(err).Error("failed to get leaderboard")
		res = "An error occurred getting the leaderboard"
	}
	b.send(session, message, res)
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	teams, err := b.APIPtr.GetTeams(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNoTeams) {
			b.send(session, message, "The bracket has not been announced yet")
			return
		}
		b.Log.WithError(err).Error("failed to get teams")
		b.send(session, message, "An error occured getting the teams list")
		return
	}

	var res strings.Builder
	res.WriteString("The first round games are:\n")
	for game := 0; game+1 < len(teams); game += 2 {
		res.WriteString(fmt.Sprintf("%d. %s vs %s\n", game/2+1, teams[game], teams[game+1]))
	}
	b.send(session, message, res.String())
}

// finalFourHandler handles the $final4 command
func (b *Bot) finalFourHandler(session DiscordSession, message *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	username := message.Author.Username
	images, err := b.APIPtr.GetEndRounds(ctx, message.Author.ID)
	if err != nil {
		if errors.Is(err, api.ErrNoEntry) {
			b.send(session, message, fmt.Sprintf("%s does not have a bracket stored. Use $set to set your bracket\n", username))
			return
		}
		b.Log.WithError(err).WithField("userid", message.Author.ID).Error("failed to get end rounds")
		b.send(session, message, fmt.Sprintf("An error occured getting %s's picks", username))
		return
	}
	b.send(session, message, formatEndRounds(username, images))
}

// formatEndRounds lists the Final Four, championship game and champion picks from their image names
// Preconditions: Receives the 7 image names for slots 56 to 62, or an empty list
// Postconditions: Returns the message body, blank picks are shown as TBD
func formatEndRounds(username string, images []string) string {
	if len(images) == 0 {
		return fmt.Sprintf("%s has not made any picks yet", username)
	}
	names := make([]string, len(images))
	for i, image := range images {
		names[i] = strings.TrimSuffix(image, ".png")
		if names[i] == "" {
			names[i] = "TBD"
		}
	}
	for len(names) < 7 {
		names = append(names, "TBD")
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s's final rounds\n", username))
	res.WriteString(fmt.Sprintf("Final Four: %s\n", strings.Join(names[0:4], ", ")))
	res.WriteString(fmt.Sprintf("Championship: %s\n", strings.Join(names[4:6], " vs ")))
	res.WriteString(fmt.Sprintf("Champion: %s\n", names[6]))
	return res.String()
}

// scoresHandler handles the $scores command
func (b *Bot) scoresHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.typing(session, message)
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	games, err := b.APIPtr.GetScoreboard(ctx)
	if err != nil {
		b.Log.WithError(err).Error("failed to get scoreboard")
		b.send(session, message, "An error occured getting the scores")
		return
	}
	if len(games) == 0 {
		b.send(session, message, "No tournament games today")
		return
	}

	var res strings.Builder
	res.WriteString("Today's games:\n")
	for _, game := range games {
		res.WriteString(formatTickerGame(game))
		res.WriteString("\n")
	}
	b.send(session, message, res.String())
}

// formatTickerGame formats a game as "(seed) away score - score (seed) home, status"
func formatTickerGame(game external.TickerGame) string {
	side := func(s external.TickerSide) string {
		name := s.Short
		if s.Seed != "" {
			name = fmt.Sprintf("(%s) %s", s.Seed, name)
		}
		if s.Winner {
			name = "**" + name + "**"
		}
		return name
	}

	var line string
	if game.State == external.StatePre {
		line = fmt.Sprintf("%s vs %s", side(game.Away), side(game.Home))
	} else {
		line = fmt.Sprintf("%s %s - %s %s", side(game.Away), game.Away.Score, game.Home.Score, side(game.Home))
	}
	switch {
	case game.State == external.StateFinal:
		line += ", Final"
	case game.Status != "":
		line += ", " + game.Status
	}
	return line
}
