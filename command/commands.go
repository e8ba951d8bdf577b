package command

import (
	"github.com/Wolfiri/b1nb0t/command/def"

	"github.com/bwmarrin/discordgo"
)

// AllCommands contains all of the commands
var AllCommands = []*discordgo.ApplicationCommand{
	def.BlobCommand,
}
