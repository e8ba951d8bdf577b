package def

import "github.com/bwmarrin/discordgo"

var minSubmissionID = float64(1)

var BlobCommand = &discordgo.ApplicationCommand{
	Name:        "blob",
	Description: "Manage emoji submissions",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "info",
			Description: "Show a submission's state and vote tally",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Submission ID",
					MinValue:    &minSubmissionID,
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "deny",
			Description: "Deny a submission and delete its temporary emoji",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Submission ID",
					MinValue:    &minSubmissionID,
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "approve",
			Description: "Approve a submission, or finalize one from the approval queue",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "id",
					Description: "Submission ID",
					MinValue:    &minSubmissionID,
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Final emoji name (required when approving out of the approval queue)",
					Required:    false,
				},
			},
		},
	},
}
