/* session_interface.go
 * Contains the subset of the discord session the command handlers use
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is the part of *discordgo.Session the handlers need. Commands reply with ChannelMessageSend and
// commands that wait on the store or the results feed show a typing indicator first.
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

var _ DiscordSession = (*discordgo.Session)(nil)
