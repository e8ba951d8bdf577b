package blob

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Wolfiri/b1nb0t/review"
)

// MessageDelete treats deletion of an active queue message, by anyone, as an
// implicit denial of the submission it belonged to.
func MessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	err := eng.HandleMessageDelete(m.ID)
	if err != nil && !errors.Is(err, review.ErrNotFound) {
		log.Printf("Error handling deleted message %s: %v", m.ID, err)
	}
}
