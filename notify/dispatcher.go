package notify

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Dispatcher wraps the outbound Discord calls the review flow makes. Markers
// are the decision reactions in "name:id" form, attached to queue posts in a
// fixed order: approve first, then reject.
type Dispatcher struct {
	session       *discordgo.Session
	approveMarker string
	rejectMarker  string
}

// NewDispatcher creates a Dispatcher over an open Discord session.
func NewDispatcher(session *discordgo.Session, approveMarker, rejectMarker string) *Dispatcher {
	return &Dispatcher{session: session, approveMarker: approveMarker, rejectMarker: rejectMarker}
}

// PostToQueue sends a message to a queue channel and returns its ID.
func (d *Dispatcher) PostToQueue(channelID, content string) (string, error) {
	msg, err := d.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", fmt.Errorf("post to channel %s: %w", channelID, err)
	}
	return msg.ID, nil
}

// PostWithMarkers posts a message and attaches both decision markers so
// reviewers can vote with one click.
func (d *Dispatcher) PostWithMarkers(channelID, content string) (string, error) {
	msgID, err := d.PostToQueue(channelID, content)
	if err != nil {
		return "", err
	}
	if err := d.session.MessageReactionAdd(channelID, msgID, d.approveMarker); err != nil {
		return msgID, fmt.Errorf("attach approve marker: %w", err)
	}
	if err := d.session.MessageReactionAdd(channelID, msgID, d.rejectMarker); err != nil {
		return msgID, fmt.Errorf("attach reject marker: %w", err)
	}
	return msgID, nil
}

// EditMessage replaces a message's content.
func (d *Dispatcher) EditMessage(channelID, messageID, content string) error {
	_, err := d.session.ChannelMessageEdit(channelID, messageID, content)
	return err
}

// DeleteMessage deletes a message. A message that is already gone is not an
// error.
func (d *Dispatcher) DeleteMessage(channelID, messageID string) error {
	err := d.session.ChannelMessageDelete(channelID, messageID)
	if err != nil && isUnknownMessage(err) {
		return nil
	}
	return err
}

// DirectMessage opens (or reuses) a DM channel with the user and sends the
// given text.
func (d *Dispatcher) DirectMessage(userID, content string) error {
	channel, err := d.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM channel for user %s: %w", userID, err)
	}
	_, err = d.session.ChannelMessageSend(channel.ID, content)
	return err
}

func isUnknownMessage(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownMessage
	}
	return false
}
