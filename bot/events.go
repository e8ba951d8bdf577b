package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/handler"
	"github.com/Wolfiri/b1nb0t/handler/blob"
)

func registerEventHandlers(s *discordgo.Session) {
	s.AddHandler(handler.OnInteractionCreate)
	s.AddHandler(blob.MessageCreate)
	s.AddHandler(blob.MessageReactionAdd)
	s.AddHandler(blob.MessageReactionRemove)
	s.AddHandler(blob.MessageDelete)

	// 设置必要的intents
	s.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds | discordgo.IntentsGuildMessageReactions
}
