package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wolfiri/b1nb0t/model"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	InitDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		DB.Close()
	})
}

func TestCreateSubmissionAssignsSequentialIDs(t *testing.T) {
	setupTestDB(t)

	first, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)
	second, err := CreateSubmission("blobthink", "43")
	require.NoError(t, err)
	assert.Equal(t, first+1, second)

	sub, err := GetSubmission(first)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "blobwave", sub.Name)
	assert.Equal(t, "42", sub.AuthorID)
	assert.Equal(t, model.StateCouncilQueue, sub.State)
	assert.Zero(t, sub.Yay)
	assert.Zero(t, sub.Nay)
}

func TestGetSubmissionMissIsNotAnError(t *testing.T) {
	setupTestDB(t)

	sub, err := GetSubmission(999)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestMessageLookupsRespectState(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)
	require.NoError(t, SetIntakeRefs(id, "snapshot", "e1", "council-msg", "suggestion-msg"))

	sub, err := GetCouncilQueueByMessageID("council-msg")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, id, sub.ID)
	assert.Equal(t, "snapshot", sub.Content)
	assert.Equal(t, "e1", sub.TempEmojiID)

	// Once promoted, the council-queue lookup stops matching but the
	// active lookup still resolves both queue messages.
	ok, err := TransitionState(id, model.StateCouncilQueue, model.StateApprovalQueue)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, SetApprovalMessage(id, "approval-msg"))

	sub, err = GetCouncilQueueByMessageID("council-msg")
	require.NoError(t, err)
	assert.Nil(t, sub)

	sub, err = GetActiveByMessageID("approval-msg")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, id, sub.ID)

	// Terminal rows are invisible to the active lookup.
	ok, err = TransitionState(id, model.StateApprovalQueue, model.StateDenied)
	require.NoError(t, err)
	require.True(t, ok)

	sub, err = GetActiveByMessageID("approval-msg")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestAdjustTallyGuardedOnCouncilQueue(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)

	require.NoError(t, AdjustTally(id, 1, 0))
	require.NoError(t, AdjustTally(id, 1, 1))
	// Removal deltas are applied as delivered, even below zero.
	require.NoError(t, AdjustTally(id, 0, -2))

	sub, err := GetSubmission(id)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Yay)
	assert.Equal(t, -1, sub.Nay)

	ok, err := TransitionState(id, model.StateCouncilQueue, model.StateDenied)
	require.NoError(t, err)
	require.True(t, ok)

	// A vote racing the transition must not touch the settled row.
	require.NoError(t, AdjustTally(id, 1, 0))
	sub, err = GetSubmission(id)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Yay)
}

func TestTransitionStateIsCompareAndSwap(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)

	ok, err := TransitionState(id, model.StateCouncilQueue, model.StateApprovalQueue)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same edge again: the source state no longer matches.
	ok, err = TransitionState(id, model.StateCouncilQueue, model.StateApprovalQueue)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = TransitionState(id, model.StateApprovalQueue, model.StateApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	// Terminal states accept no further edges.
	ok, err = TransitionState(id, model.StateApproved, model.StateDenied)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearMessageRefs(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)
	require.NoError(t, SetIntakeRefs(id, "snapshot", "e1", "council-msg", "suggestion-msg"))
	require.NoError(t, SetApprovalMessage(id, "approval-msg"))

	require.NoError(t, ClearCouncilMessages(id))
	require.NoError(t, ClearApprovalMessage(id))

	sub, err := GetSubmission(id)
	require.NoError(t, err)
	assert.Empty(t, sub.CouncilMsgID)
	assert.Empty(t, sub.SuggestionMsgID)
	assert.Empty(t, sub.ApprovalMsgID)
}

func TestTransitionAuditTrail(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)

	require.NoError(t, RecordTransition(id, model.StateCouncilQueue, model.StateApprovalQueue, "council"))
	require.NoError(t, RecordTransition(id, model.StateApprovalQueue, model.StateApproved, "mod7"))

	transitions, err := ListTransitions(id)
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	assert.Equal(t, model.StateCouncilQueue, transitions[0].FromState)
	assert.Equal(t, model.StateApprovalQueue, transitions[0].ToState)
	assert.Equal(t, "council", transitions[0].Actor)
	assert.Equal(t, model.StateApproved, transitions[1].ToState)
	assert.Equal(t, "mod7", transitions[1].Actor)
	assert.NotEmpty(t, transitions[0].ID)
	assert.NotEqual(t, transitions[0].ID, transitions[1].ID)
}

func TestDeleteSubmissionRollsBackIntake(t *testing.T) {
	setupTestDB(t)

	id, err := CreateSubmission("blobwave", "42")
	require.NoError(t, err)
	require.NoError(t, DeleteSubmission(id))

	sub, err := GetSubmission(id)
	require.NoError(t, err)
	assert.Nil(t, sub)

	// The counter does not move backwards; the next submission still gets
	// a fresh ID.
	next, err := CreateSubmission("blobthink", "43")
	require.NoError(t, err)
	assert.Equal(t, id+1, next)
}
