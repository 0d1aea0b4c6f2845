/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 */

package bot

import "github.com/bwmarrin/discordgo"

// MockDiscordSession records the messages the bot sends
type MockDiscordSession struct {
	SentMessages []MockMessage
	// TypingChannels lists the channels a typing indicator was shown in
	TypingChannels []string
	// ErrorToReturn makes every send fail
	ErrorToReturn error
	// TypingError makes every typing indicator fail
	TypingError error
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

var _ DiscordSession = (*MockDiscordSession)(nil)

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{}
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: content}, nil
}

// ChannelTyping implements DiscordSession.ChannelTyping
func (m *MockDiscordSession) ChannelTyping(channelID string, options ...discordgo.RequestOption) error {
	if m.TypingError != nil {
		return m.TypingError
	}
	m.TypingChannels = append(m.TypingChannels, channelID)
	return nil
}

// LastContent returns the content of the last message sent, or "" if none
func (m *MockDiscordSession) LastContent() string {
	if len(m.SentMessages) == 0 {
		return ""
	}
	return m.SentMessages[len(m.SentMessages)-1].Content
}

// MessagesIn returns the contents sent to one channel in order
func (m *MockDiscordSession) MessagesIn(channelID string) []string {
	var contents []string
	for _, msg := range m.SentMessages {
		if msg.ChannelID == channelID {
			contents = append(contents, msg.Content)
		}
	}
	return contents
}
