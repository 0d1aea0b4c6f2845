/* bot.go
 * Contains logic used for creating the bot and routing messages to the command handlers. Requires a discord bot
 * token and APIPtr, both of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"strings"

	"bracket-pool/api/api"
	"bracket-pool/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// Bot is the discord front end of the pool
type Bot struct {
	BotToken string
	APIPtr   *api.API
	Log      *logrus.Entry
}

// command is a handler for one bot command
type command struct {
	name    string
	handler func(b *Bot, session DiscordSession, message *discordgo.MessageCreate)
}

// commands the bot responds to, in the order they are listed by $help
var commands = []command{
	{"$help", (*Bot).helpMessageHandler},
	{"$details", (*Bot).detailsHandler},
	{"$set", (*Bot).setBracketHandler},
	{"$check", (*Bot).checkBracketHandler},
	{"$leaderboard", (*Bot).leaderboardHandler},
	{"$teams", (*Bot).teamsHandler},
	{"$final4", (*Bot).finalFourHandler},
	{"$scores", (*Bot).scoresHandler},
}

// NewBot creates a bot for the given token and api
func NewBot(botToken string, apiPtr *api.API, logger *logrus.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Log:      logger.WithField("component", "bot"),
	}, nil
}

// newMessageHandler routes messages to the command handlers
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}

	for _, cmd := range commands {
		if !isCommand(message.Content, cmd.name) {
			continue
		}
		metrics.BotCommands.WithLabelValues(strings.TrimPrefix(cmd.name, "$")).Inc()
		cmd.handler(b, session, message)
		return
	}
}

// send posts a reply to the channel the command was run in, logging if discord rejects it
func (b *Bot) send(session DiscordSession, message *discordgo.MessageCreate, content string) {
	if _, err := session.ChannelMessageSend(message.ChannelID, content); err != nil {
		b.Log.WithError(err).WithField("channel", message.ChannelID).Error("failed to send message")
	}
}

// typing shows the typing indicator while a slow command runs. Failure is logged and the command carries on.
func (b *Bot) typing(session DiscordSession, message *discordgo.MessageCreate) {
	if err := session.ChannelTyping(message.ChannelID); err != nil {
		b.Log.WithError(err).WithField("channel", message.ChannelID).Warn("failed to show typing indicator")
	}
}

// isCommand reports whether the message is the given command, with or without arguments
// Preconditions: Receives the message content and a command such as "$set"
// Postconditions: Returns true if the content is the command or starts with the command followed by whitespace
func isCommand(content string, name string) bool {
	if !startsWith(content, name) {
		return false
	}
	rest := content[len(name):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\n' || rest[0] == '\t'
}

// Helper function to check if a string starts with a given substring
// Preconditions: Recieves an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	if len(substring) > len(inputString) {
		return false
	}
	return inputString[:len(substring)] == substring
}
