package db

import "github.com/Wolfiri/b1nb0t/model"

// Store adapts the package-level database functions to the review engine's
// store interface so the engine can be exercised against fakes in tests.
type Store struct{}

func (Store) GetSubmission(id int64) (*model.Submission, error) {
	return GetSubmission(id)
}

func (Store) GetCouncilQueueByMessageID(messageID string) (*model.Submission, error) {
	return GetCouncilQueueByMessageID(messageID)
}

func (Store) GetActiveByMessageID(messageID string) (*model.Submission, error) {
	return GetActiveByMessageID(messageID)
}

func (Store) AdjustTally(id int64, yayDelta, nayDelta int) error {
	return AdjustTally(id, yayDelta, nayDelta)
}

func (Store) TransitionState(id int64, from, to model.State) (bool, error) {
	return TransitionState(id, from, to)
}

func (Store) SetApprovalMessage(id int64, messageID string) error {
	return SetApprovalMessage(id, messageID)
}

func (Store) ClearCouncilMessages(id int64) error {
	return ClearCouncilMessages(id)
}

func (Store) ClearApprovalMessage(id int64) error {
	return ClearApprovalMessage(id)
}

func (Store) RecordTransition(submissionID int64, from, to model.State, actor string) error {
	return RecordTransition(submissionID, from, to, actor)
}
