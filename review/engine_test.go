package review

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wolfiri/b1nb0t/model"
)

type fakeStore struct {
	mu          sync.Mutex
	subs        map[int64]*model.Submission
	transitions []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{subs: make(map[int64]*model.Submission)}
}

func (f *fakeStore) put(sub *model.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *sub
	f.subs[sub.ID] = &cp
}

func (f *fakeStore) GetSubmission(id int64) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeStore) GetCouncilQueueByMessageID(messageID string) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.CouncilMsgID == messageID && sub.State == model.StateCouncilQueue {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetActiveByMessageID(messageID string) (*model.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if (sub.CouncilMsgID == messageID || sub.ApprovalMsgID == messageID) && !sub.State.Terminal() {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) AdjustTally(id int64, yayDelta, nayDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subs[id]; ok && sub.State == model.StateCouncilQueue {
		sub.Yay += yayDelta
		sub.Nay += nayDelta
	}
	return nil
}

func (f *fakeStore) TransitionState(id int64, from, to model.State) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok || sub.State != from {
		return false, nil
	}
	sub.State = to
	return true, nil
}

func (f *fakeStore) SetApprovalMessage(id int64, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subs[id]; ok {
		sub.ApprovalMsgID = messageID
	}
	return nil
}

func (f *fakeStore) ClearCouncilMessages(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subs[id]; ok {
		sub.CouncilMsgID = ""
		sub.SuggestionMsgID = ""
	}
	return nil
}

func (f *fakeStore) ClearApprovalMessage(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub, ok := f.subs[id]; ok {
		sub.ApprovalMsgID = ""
	}
	return nil
}

func (f *fakeStore) RecordTransition(id int64, from, to model.State, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transitions = append(f.transitions, fmt.Sprintf("%d:%s->%s:%s", id, from, to, actor))
	return nil
}

type fakeEmoji struct {
	mu          sync.Mutex
	deleted     []string
	finalized   map[string]string
	finalizeErr error
}

func newFakeEmoji() *fakeEmoji {
	return &fakeEmoji{finalized: make(map[string]string)}
}

func (f *fakeEmoji) CreateEphemeral(image []byte, name string, submissionID int64) (string, error) {
	return "ephemeral", nil
}

func (f *fakeEmoji) DeleteEphemeral(emojiID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, emojiID)
	return nil
}

func (f *fakeEmoji) Finalize(emojiID, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	f.finalized[emojiID] = newName
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	nextID  int
	posts   map[string][]string // channel -> contents
	deleted []string            // "channel/message"
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{posts: make(map[string][]string)}
}

func (f *fakeNotifier) PostToQueue(channelID, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.posts[channelID] = append(f.posts[channelID], content)
	return fmt.Sprintf("msg-%d", f.nextID), nil
}

func (f *fakeNotifier) PostWithMarkers(channelID, content string) (string, error) {
	return f.PostToQueue(channelID, content)
}

func (f *fakeNotifier) EditMessage(channelID, messageID, content string) error { return nil }

func (f *fakeNotifier) DeleteMessage(channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

func (f *fakeNotifier) DirectMessage(userID, content string) error { return nil }

func newTestEngine() (*Engine, *fakeStore, *fakeEmoji, *fakeNotifier) {
	store := newFakeStore()
	host := newFakeEmoji()
	notifier := newFakeNotifier()
	engine := NewEngine(store, host, notifier, Config{
		SuggestionChannelID:    "suggestion",
		CouncilQueueChannelID:  "council",
		ChangelogChannelID:     "changelog",
		ApprovalQueueChannelID: "approval",
		ApproveMarker:          "green_tick:1",
		RejectMarker:           "red_tick:2",
	})
	return engine, store, host, notifier
}

func seedCouncilSubmission(store *fakeStore, yay, nay int) {
	store.put(&model.Submission{
		ID:              1,
		Name:            "blobwave",
		AuthorID:        "42",
		TempEmojiID:     "e1",
		CouncilMsgID:    "m1",
		SuggestionMsgID: "s1",
		Yay:             yay,
		Nay:             nay,
		State:           model.StateCouncilQueue,
	})
}

func seedApprovalSubmission(store *fakeStore) {
	store.put(&model.Submission{
		ID:            1,
		Name:          "blobwave",
		AuthorID:      "42",
		TempEmojiID:   "e1",
		ApprovalMsgID: "a1",
		State:         model.StateApprovalQueue,
	})
}

func TestConcurrentVotesNoLostUpdates(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	seedCouncilSubmission(store, 0, 0)

	// 9 approve adds, 6 reject adds and 6 reject removes: no interleaving
	// can cross either decision threshold, so every delta must land.
	var wg sync.WaitGroup
	dispatch := func(marker Marker, delta int) {
		defer wg.Done()
		_ = engine.HandleVote("m1", marker, delta)
	}
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go dispatch(MarkerApprove, 1)
	}
	for i := 0; i < 6; i++ {
		wg.Add(2)
		go dispatch(MarkerReject, 1)
		go dispatch(MarkerReject, -1)
	}
	wg.Wait()

	sub, err := store.GetSubmission(1)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, 9, sub.Yay)
	assert.Equal(t, 0, sub.Nay)
	assert.Equal(t, model.StateCouncilQueue, sub.State)
}

func TestPromotionRequiresTurnout(t *testing.T) {
	engine, store, _, notifier := newTestEngine()
	seedCouncilSubmission(store, 9, 4)

	// yay=10 nay=4: turnout 14 is below the quorum, nothing fires.
	require.NoError(t, engine.HandleVote("m1", MarkerApprove, 1))
	sub, _ := store.GetSubmission(1)
	require.Equal(t, model.StateCouncilQueue, sub.State)

	// One more approve: yay=11 nay=4, turnout 15, margin 7. Promotes.
	require.NoError(t, engine.HandleVote("m1", MarkerApprove, 1))
	sub, _ = store.GetSubmission(1)
	require.Equal(t, model.StateApprovalQueue, sub.State)

	assert.NotEmpty(t, sub.ApprovalMsgID)
	assert.Empty(t, sub.CouncilMsgID)
	assert.Empty(t, sub.SuggestionMsgID)
	assert.Len(t, notifier.posts["approval"], 1)
	assert.Len(t, notifier.posts["changelog"], 1)
	assert.Contains(t, notifier.deleted, "council/m1")
	assert.Contains(t, notifier.deleted, "suggestion/s1")
	assert.Contains(t, store.transitions, "1:COUNCIL_QUEUE->APPROVAL_QUEUE:council")
}

func TestDenialThresholdDeletesEmojiOnce(t *testing.T) {
	engine, store, host, notifier := newTestEngine()
	seedCouncilSubmission(store, 4, 10)

	require.NoError(t, engine.HandleVote("m1", MarkerReject, 1))

	sub, _ := store.GetSubmission(1)
	require.Equal(t, model.StateDenied, sub.State)
	assert.Equal(t, []string{"e1"}, host.deleted)
	assert.Len(t, notifier.posts["changelog"], 1)
	assert.Contains(t, notifier.deleted, "council/m1")
	assert.Contains(t, notifier.deleted, "suggestion/s1")
}

func TestVoteAfterTransitionIsDropped(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	store.put(&model.Submission{
		ID:            1,
		Name:          "blobwave",
		TempEmojiID:   "e1",
		CouncilMsgID:  "m1",
		ApprovalMsgID: "a1",
		Yay:           11,
		Nay:           4,
		State:         model.StateApprovalQueue,
	})

	err := engine.HandleVote("m1", MarkerApprove, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	sub, _ := store.GetSubmission(1)
	assert.Equal(t, 11, sub.Yay)
}

func TestUnknownMarkerIsNoOp(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	seedCouncilSubmission(store, 3, 3)

	require.NoError(t, engine.HandleVote("m1", Marker(99), 1))

	sub, _ := store.GetSubmission(1)
	assert.Equal(t, 3, sub.Yay)
	assert.Equal(t, 3, sub.Nay)
}

func TestDenyIsIdempotent(t *testing.T) {
	engine, store, host, _ := newTestEngine()
	seedApprovalSubmission(store)

	require.NoError(t, engine.Deny(1, "mod7"))
	sub, _ := store.GetSubmission(1)
	require.Equal(t, model.StateDenied, sub.State)

	err := engine.Deny(1, "mod7")
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Len(t, host.deleted, 1)
}

func TestMessageDeleteImpliesDenialOnce(t *testing.T) {
	engine, store, host, notifier := newTestEngine()
	seedCouncilSubmission(store, 2, 1)

	require.NoError(t, engine.HandleMessageDelete("m1"))
	sub, _ := store.GetSubmission(1)
	require.Equal(t, model.StateDenied, sub.State)

	// A duplicate delete event no longer resolves to an active submission.
	err := engine.HandleMessageDelete("m1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, host.deleted, 1)

	// Implicit denials are not announced in the changelog.
	assert.Empty(t, notifier.posts["changelog"])
}

func TestManualApproveIgnoresTally(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	seedCouncilSubmission(store, 2, 1)

	require.NoError(t, engine.Approve(1, "", "mod7"))

	sub, _ := store.GetSubmission(1)
	assert.Equal(t, model.StateApprovalQueue, sub.State)
	assert.Contains(t, store.transitions, "1:COUNCIL_QUEUE->APPROVAL_QUEUE:mod7")
}

func TestApproveFromApprovalQueueRequiresName(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	seedApprovalSubmission(store)

	err := engine.Approve(1, "", "mod7")
	assert.ErrorIs(t, err, ErrNameRequired)

	sub, _ := store.GetSubmission(1)
	assert.Equal(t, model.StateApprovalQueue, sub.State)
}

func TestFinalizeFailureBlocksApproval(t *testing.T) {
	engine, store, host, notifier := newTestEngine()
	seedApprovalSubmission(store)

	host.finalizeErr = errors.New("resource host unavailable")
	err := engine.Approve(1, "blobwave", "mod7")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotEligible)

	// The submission stays in the approval queue for a retry.
	sub, _ := store.GetSubmission(1)
	require.Equal(t, model.StateApprovalQueue, sub.State)
	assert.Equal(t, "a1", sub.ApprovalMsgID)

	host.finalizeErr = nil
	require.NoError(t, engine.Approve(1, "blobwave", "mod7"))

	sub, _ = store.GetSubmission(1)
	assert.Equal(t, model.StateApproved, sub.State)
	assert.Empty(t, sub.ApprovalMsgID)
	assert.Equal(t, "blobwave", host.finalized["e1"])
	assert.Contains(t, notifier.deleted, "approval/a1")
}

func TestTerminalStatesRejectModeratorTransitions(t *testing.T) {
	engine, store, _, _ := newTestEngine()
	store.put(&model.Submission{ID: 1, Name: "blobwave", State: model.StateApproved})

	assert.ErrorIs(t, engine.Deny(1, "mod7"), ErrNotEligible)
	assert.ErrorIs(t, engine.Approve(1, "blobwave", "mod7"), ErrNotEligible)

	sub, _ := store.GetSubmission(1)
	assert.Equal(t, model.StateApproved, sub.State)
}

func TestModeratorCommandsOnMissingSubmission(t *testing.T) {
	engine, _, _, _ := newTestEngine()

	assert.ErrorIs(t, engine.Deny(12345, "mod7"), ErrNotFound)
	assert.ErrorIs(t, engine.Approve(12345, "", "mod7"), ErrNotFound)
}
