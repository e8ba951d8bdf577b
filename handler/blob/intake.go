package blob

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/config"
	"github.com/Wolfiri/b1nb0t/db"
	"github.com/Wolfiri/b1nb0t/utils"
)

var emojiNameRE = regexp.MustCompile(`:([a-zA-Z0-9_]+):`)

const badSuggestionMsg = "Heya! Looks like you tried to suggest an emoji." +
	" Unfortunately it looks like you didn't send your message in the right format," +
	" so I wasn't able to understand it. To suggest an emoji, you must post the" +
	" emoji name, like so: `:my_emoji_name:` and upload the emoji as an attachment." +
	" Feel free to try again, and if you are still having problems ping a moderator!"

const suggestionReceivedMsg = "Thanks for your emoji submission!" +
	" It's been added to our internal vote queue, so expect an update soon!"

// MessageCreate ingests new suggestions posted in the suggestion channel.
func MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if m.ChannelID != config.Cfg.EmojiMod.SuggestionChannelID {
		return
	}
	if !utils.MarkMessageSeen(m.ID) {
		return
	}

	// A suggestion is a `:name:` plus exactly one attachment.
	match := emojiNameRE.FindStringSubmatch(m.Content)
	if match == nil || len(m.Attachments) != 1 {
		rejectSuggestion(s, m)
		return
	}
	name := match[1]

	image, err := utils.FetchEmojiImage(m.Attachments[0].URL)
	if err != nil {
		log.Printf("Failed to download suggestion attachment from %s: %v", m.Author.ID, err)
		rejectSuggestion(s, m)
		return
	}

	subID, err := db.CreateSubmission(name, m.Author.ID)
	if err != nil {
		log.Printf("Failed to create submission for %s: %v", m.Author.ID, err)
		return
	}

	saveEmojiImage(subID, image)

	// The record must not stay observable in the council queue without a
	// backing emoji, so a failed upload rolls the row back.
	emojiID, err := emojiHost.CreateEphemeral(image, name, subID)
	if err != nil {
		log.Printf("Failed to create ephemeral emoji for submission %d: %v", subID, err)
		rollbackIntake(subID, "")
		rejectSuggestion(s, m)
		return
	}

	content := fmt.Sprintf("<:%s_%d:%s> (`%s`) submitted by <@%s> (`#%d`)",
		name, subID, emojiID, name, m.Author.ID, subID)

	// The council queue message ID correlates future vote events, so this
	// post failing aborts the whole intake.
	councilMsg, err := dispatcher.PostWithMarkers(config.Cfg.EmojiMod.CouncilQueueChannelID, content)
	if err != nil {
		log.Printf("Failed to post submission %d to the council queue: %v", subID, err)
		rollbackIntake(subID, emojiID)
		rejectSuggestion(s, m)
		return
	}

	// Public log repost; losing it is not fatal.
	suggestionMsg, err := dispatcher.PostToQueue(config.Cfg.EmojiMod.SuggestionChannelID,
		content+fmt.Sprintf(" [<%s>]", m.Attachments[0].URL))
	if err != nil {
		log.Printf("Failed to repost submission %d to the suggestion channel: %v", subID, err)
	}

	if err := dispatcher.DirectMessage(m.Author.ID, suggestionReceivedMsg); err != nil {
		log.Printf("Failed to DM suggestion receipt to %s: %v", m.Author.ID, err)
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Failed to delete suggestion message %s: %v", m.ID, err)
	}

	if err := db.SetIntakeRefs(subID, content, emojiID, councilMsg, suggestionMsg); err != nil {
		log.Printf("Failed to save intake refs for submission %d: %v", subID, err)
	}
}

// rejectSuggestion removes a malformed or failed suggestion and tells the
// submitter what went wrong.
func rejectSuggestion(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Failed to delete bad suggestion message %s: %v", m.ID, err)
	}
	if err := dispatcher.DirectMessage(m.Author.ID, badSuggestionMsg); err != nil {
		log.Printf("Failed to DM suggestion guidance to %s: %v", m.Author.ID, err)
	}
}

// rollbackIntake undoes a partial intake so no council queue record lingers
// without its queue message or backing emoji.
func rollbackIntake(subID int64, emojiID string) {
	if emojiID != "" {
		if err := emojiHost.DeleteEphemeral(emojiID); err != nil {
			log.Printf("Failed to delete ephemeral emoji during intake rollback of %d: %v", subID, err)
		}
	}
	if err := db.DeleteSubmission(subID); err != nil {
		log.Printf("Failed to roll back submission %d: %v", subID, err)
	}
}

// saveEmojiImage keeps a PNG copy of every suggestion on disk for moderation
// history.
func saveEmojiImage(subID int64, image []byte) {
	dir := filepath.Join(config.Cfg.EmojiMod.DataDir, "emojis")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Failed to create emoji image dir: %v", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.png", subID))
	if err := os.WriteFile(path, image, 0644); err != nil {
		log.Printf("Failed to save emoji image for submission %d: %v", subID, err)
	}
}
