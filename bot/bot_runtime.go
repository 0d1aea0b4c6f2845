//go:build !test

/* bot_runtime.go
 * Contains the gateway connection. Everything it receives is routed through newMessageHandler.
 */

package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Run connects to the discord gateway and serves commands until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	discord, err := discordgo.New("Bot " + b.BotToken)
	if err != nil {
		return fmt.Errorf("creating discord session: %w", err)
	}
	discord.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.newMessageHandler(s, m, s.State.User.ID)
	})

	if err := discord.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}
	defer func() {
		if err := discord.Close(); err != nil {
			b.Log.WithError(err).Warn("failed to close discord session")
		}
	}()

	b.Log.Info("Bracket Pool Bot started")
	<-ctx.Done()
	b.Log.Info("Bracket Pool Bot stopping")
	return nil
}
