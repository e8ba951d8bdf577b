package blob

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/config"
	"github.com/Wolfiri/b1nb0t/review"
)

// MessageReactionAdd handles decision reactions added on council queue
// messages.
func MessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	handleReaction(s, r.MessageReaction, 1)
}

// MessageReactionRemove handles decision reactions removed from council
// queue messages.
func MessageReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	handleReaction(s, r.MessageReaction, -1)
}

func handleReaction(s *discordgo.Session, r *discordgo.MessageReaction, delta int) {
	if r.UserID == s.State.User.ID || r.ChannelID != config.Cfg.EmojiMod.CouncilQueueChannelID {
		return
	}

	marker, ok := markerKind(r.Emoji.ID)
	if !ok {
		return
	}

	err := eng.HandleVote(r.MessageID, marker, delta)
	if err != nil && !errors.Is(err, review.ErrNotFound) {
		log.Printf("Error handling vote on message %s: %v", r.MessageID, err)
	}
}

// markerKind maps a reacted emoji ID to a vote marker.
func markerKind(emojiID string) (review.Marker, bool) {
	switch emojiID {
	case approveMarkerID:
		return review.MarkerApprove, true
	case rejectMarkerID:
		return review.MarkerReject, true
	default:
		return 0, false
	}
}
