package emoji

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Manager is the discordgo-backed lifecycle manager for the ephemeral guild
// emojis that represent submissions under review.
type Manager struct {
	session *discordgo.Session
	guildID string
	// roleID restricts the ephemeral emoji's visibility to the council while
	// the submission is being reviewed.
	roleID string
}

// NewManager creates a Manager bound to one guild.
func NewManager(session *discordgo.Session, guildID, roleID string) *Manager {
	return &Manager{session: session, guildID: guildID, roleID: roleID}
}

// CreateEphemeral uploads a restricted guild emoji for the submission. The
// emoji name carries the submission ID as a suffix so review-phase names
// never collide with existing emojis.
func (m *Manager) CreateEphemeral(image []byte, name string, submissionID int64) (string, error) {
	created, err := m.session.GuildEmojiCreate(m.guildID, &discordgo.EmojiParams{
		Name:  fmt.Sprintf("%s_%d", name, submissionID),
		Image: "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
		Roles: []string{m.roleID},
	})
	if err != nil {
		return "", fmt.Errorf("create guild emoji: %w", err)
	}
	return created.ID, nil
}

// DeleteEphemeral removes the temporary emoji. Deleting an emoji that is
// already gone is not an error.
func (m *Manager) DeleteEphemeral(emojiID string) error {
	if emojiID == "" {
		return nil
	}
	err := m.session.GuildEmojiDelete(m.guildID, emojiID)
	if err != nil && isUnknownEmoji(err) {
		return nil
	}
	return err
}

// Finalize clears the role restriction and renames the emoji in one edit,
// making it a regular member of the guild's emoji set.
func (m *Manager) Finalize(emojiID, newName string) error {
	_, err := m.session.GuildEmojiEdit(m.guildID, emojiID, &discordgo.EmojiParams{
		Name:  newName,
		Roles: []string{},
	})
	return err
}

func isUnknownEmoji(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownEmoji
	}
	return false
}
