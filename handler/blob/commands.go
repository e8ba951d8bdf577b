package blob

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/db"
	"github.com/Wolfiri/b1nb0t/model"
	"github.com/Wolfiri/b1nb0t/review"
	"github.com/Wolfiri/b1nb0t/utils"
)

// BlobCommandHandler routes the /blob moderation subcommands.
func BlobCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || !utils.CheckAuth(i.Member.User.ID, i.Member.Roles) {
		respond(s, i, "You don't have permission to use this command")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}

	sub := data.Options[0]
	switch sub.Name {
	case "info":
		handleInfo(s, i, sub.Options)
	case "deny":
		handleDeny(s, i, sub.Options)
	case "approve":
		handleApprove(s, i, sub.Options)
	}
}

func handleInfo(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	sid := opts[0].IntValue()

	submission, err := db.GetSubmission(sid)
	if err != nil {
		log.Printf("Failed to get submission %d: %v", sid, err)
		respond(s, i, "Failed to look up that submission, try again later")
		return
	}
	if submission == nil {
		respond(s, i, "Invalid submission ID")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%d] `%s` submitted by <@%s> (state = %s, yay = %d, nay = %d)",
		submission.ID, submission.Name, submission.AuthorID,
		submission.State, submission.Yay, submission.Nay)

	transitions, err := db.ListTransitions(sid)
	if err != nil {
		log.Printf("Failed to list transitions for submission %d: %v", sid, err)
	}
	for _, t := range transitions {
		fmt.Fprintf(&b, "\n- %s → %s (%s)", t.FromState, t.ToState, formatActor(t.Actor))
	}

	respond(s, i, b.String())
}

func handleDeny(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	sid := opts[0].IntValue()

	err := eng.Deny(sid, i.Member.User.ID)
	switch {
	case errors.Is(err, review.ErrNotFound):
		respond(s, i, "Invalid submission ID")
	case errors.Is(err, review.ErrNotEligible):
		respond(s, i, "Submission is not eligible for denial")
	case err != nil:
		log.Printf("Failed to deny submission %d: %v", sid, err)
		respond(s, i, "Failed to deny that submission, try again later")
	default:
		respond(s, i, ":ok_hand: denied that emoji")
	}
}

func handleApprove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	sid := opts[0].IntValue()

	var finalName string
	if len(opts) > 1 {
		finalName = opts[1].StringValue()
	}

	err := eng.Approve(sid, finalName, i.Member.User.ID)
	switch {
	case errors.Is(err, review.ErrNotFound):
		respond(s, i, "Invalid submission ID")
	case errors.Is(err, review.ErrNotEligible):
		respond(s, i, "Submission is not eligible for approval")
	case errors.Is(err, review.ErrNameRequired):
		respond(s, i, "A final emoji name is required to approve out of the approval queue")
	case err != nil:
		log.Printf("Failed to approve submission %d: %v", sid, err)
		respond(s, i, "Failed to approve that submission, try again later")
	default:
		submission, err := db.GetSubmission(sid)
		if err == nil && submission != nil && submission.State == model.StateApprovalQueue {
			respond(s, i, ":ok_hand: sent to approval queue")
		} else {
			respond(s, i, ":ok_hand: approved that emoji")
		}
	}
}

func formatActor(actor string) string {
	switch actor {
	case review.ActorCouncil, review.ActorSystem:
		return actor
	default:
		return "<@" + actor + ">"
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
	}
}
