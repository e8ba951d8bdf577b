package review

import "github.com/Wolfiri/b1nb0t/model"

// Marker is a binary decision signal attached by a reviewer to a queue
// message.
type Marker int

const (
	MarkerApprove Marker = iota
	MarkerReject
)

// Store is the persistence surface the engine mutates submissions through.
// db.Store is the real implementation.
type Store interface {
	GetSubmission(id int64) (*model.Submission, error)
	GetCouncilQueueByMessageID(messageID string) (*model.Submission, error)
	GetActiveByMessageID(messageID string) (*model.Submission, error)
	AdjustTally(id int64, yayDelta, nayDelta int) error
	TransitionState(id int64, from, to model.State) (bool, error)
	SetApprovalMessage(id int64, messageID string) error
	ClearCouncilMessages(id int64) error
	ClearApprovalMessage(id int64) error
	RecordTransition(submissionID int64, from, to model.State, actor string) error
}

// EmojiHost manages the ephemeral guild emoji backing a submission.
type EmojiHost interface {
	CreateEphemeral(image []byte, name string, submissionID int64) (string, error)
	// DeleteEphemeral is idempotent: deleting an already-absent emoji is not
	// an error.
	DeleteEphemeral(emojiID string) error
	// Finalize strips the role restriction and renames the emoji in one edit.
	Finalize(emojiID, newName string) error
}

// Notifier is the outbound messaging gateway surface the engine drives
// during transitions.
type Notifier interface {
	PostToQueue(channelID, content string) (string, error)
	PostWithMarkers(channelID, content string) (string, error)
	EditMessage(channelID, messageID, content string) error
	DeleteMessage(channelID, messageID string) error
	DirectMessage(userID, content string) error
}
