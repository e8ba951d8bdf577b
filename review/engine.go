package review

import (
	"fmt"
	"log"
	"sync"

	"github.com/Wolfiri/b1nb0t/model"
)

// Actors recorded in the transition audit trail for decisions not made by a
// specific moderator.
const (
	ActorCouncil = "council"
	ActorSystem  = "system"
)

// Config holds the channels and marker emojis the engine posts with. Markers
// are in "name:id" form.
type Config struct {
	SuggestionChannelID    string
	CouncilQueueChannelID  string
	ChangelogChannelID     string
	ApprovalQueueChannelID string

	ApproveMarker string
	RejectMarker  string
}

const lockShards = 32

// Engine drives the submission state machine. It ingests vote and
// message-delete events from the gateway, maintains per-submission tallies,
// and performs the COUNCIL_QUEUE → APPROVAL_QUEUE → APPROVED/DENIED
// transitions together with their emoji and message side effects.
type Engine struct {
	store  Store
	emoji  EmojiHost
	notify Notifier
	cfg    Config

	// Per-submission mutexes, sharded by ID. A tally update, the threshold
	// decision and the full transition side-effect sequence run under one
	// shard lock, so vote events, moderator commands and message-delete
	// events serialize per submission.
	locks [lockShards]sync.Mutex
}

// NewEngine creates a review engine over the given collaborators.
func NewEngine(store Store, emoji EmojiHost, notify Notifier, cfg Config) *Engine {
	return &Engine{store: store, emoji: emoji, notify: notify, cfg: cfg}
}

func (e *Engine) lockFor(id int64) *sync.Mutex {
	return &e.locks[uint64(id)%lockShards]
}

// HandleVote applies one signed vote delta for the submission owning the
// given council queue message and evaluates the decision thresholds on the
// resulting tally. Votes for messages that no longer map to a COUNCIL_QUEUE
// submission return ErrNotFound, which callers drop silently. Unrecognized
// markers are a no-op.
func (e *Engine) HandleVote(messageID string, marker Marker, delta int) error {
	var yayDelta, nayDelta int
	switch marker {
	case MarkerApprove:
		yayDelta = delta
	case MarkerReject:
		nayDelta = delta
	default:
		return nil
	}

	probe, err := e.store.GetCouncilQueueByMessageID(messageID)
	if err != nil {
		return err
	}
	if probe == nil {
		return ErrNotFound
	}

	mu := e.lockFor(probe.ID)
	mu.Lock()
	defer mu.Unlock()

	// The update itself is guarded on COUNCIL_QUEUE in the store, so a vote
	// that lost the race against a transition cannot touch a settled row.
	if err := e.store.AdjustTally(probe.ID, yayDelta, nayDelta); err != nil {
		return err
	}

	sub, err := e.store.GetSubmission(probe.ID)
	if err != nil {
		return err
	}
	if sub == nil || sub.State != model.StateCouncilQueue {
		return nil
	}

	log.Printf("Checking submission (%d: %d yay %d nay)", sub.ID, sub.Yay, sub.Nay)
	if shouldPromote(sub.Yay, sub.Nay) {
		return e.promoteLocked(sub, ActorCouncil)
	}
	if shouldDeny(sub.Yay, sub.Nay) {
		return e.denyLocked(sub, ActorCouncil, true)
	}
	return nil
}

// HandleMessageDelete treats deletion of an active queue message as an
// implicit denial of its submission. Duplicate delete events find no
// non-terminal submission and return ErrNotFound.
func (e *Engine) HandleMessageDelete(messageID string) error {
	probe, err := e.store.GetActiveByMessageID(messageID)
	if err != nil {
		return err
	}
	if probe == nil {
		return ErrNotFound
	}

	mu := e.lockFor(probe.ID)
	mu.Lock()
	defer mu.Unlock()

	sub, err := e.store.GetSubmission(probe.ID)
	if err != nil {
		return err
	}
	if sub == nil || sub.State.Terminal() {
		return nil
	}

	log.Printf("Message was deleted for submission %d, marking submission as denied", sub.ID)
	return e.denyLocked(sub, ActorSystem, false)
}

// Approve performs a moderator approval. From COUNCIL_QUEUE it behaves like
// an automatic promotion and ignores the tally. From APPROVAL_QUEUE it
// requires a final emoji name, finalizes the emoji and settles the
// submission as APPROVED; a finalize failure leaves the submission in the
// approval queue for a retry.
func (e *Engine) Approve(id int64, finalName, actor string) error {
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sub, err := e.store.GetSubmission(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNotFound
	}

	switch sub.State {
	case model.StateCouncilQueue:
		return e.promoteLocked(sub, actor)
	case model.StateApprovalQueue:
		if finalName == "" {
			return ErrNameRequired
		}
		if err := e.emoji.Finalize(sub.TempEmojiID, finalName); err != nil {
			return fmt.Errorf("finalize emoji for submission %d: %w", sub.ID, err)
		}
		ok, err := e.store.TransitionState(sub.ID, model.StateApprovalQueue, model.StateApproved)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotEligible
		}
		log.Printf("Moving submission %d to approved", sub.ID)
		e.cleanupApprovalMessage(sub)
		e.recordTransition(sub.ID, model.StateApprovalQueue, model.StateApproved, actor)
		return nil
	default:
		return ErrNotEligible
	}
}

// Deny performs a moderator denial from either queue. Terminal submissions
// return ErrNotEligible and produce no side effects.
func (e *Engine) Deny(id int64, actor string) error {
	mu := e.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	sub, err := e.store.GetSubmission(id)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNotFound
	}
	if sub.State != model.StateCouncilQueue && sub.State != model.StateApprovalQueue {
		return ErrNotEligible
	}

	return e.denyLocked(sub, actor, sub.State == model.StateCouncilQueue)
}

// promoteLocked moves a COUNCIL_QUEUE submission into the approval queue.
// Caller holds the shard lock.
func (e *Engine) promoteLocked(sub *model.Submission, actor string) error {
	ok, err := e.store.TransitionState(sub.ID, model.StateCouncilQueue, model.StateApprovalQueue)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEligible
	}
	log.Printf("Moving submission %d to the approval queue", sub.ID)

	approvalMsg, err := e.notify.PostWithMarkers(e.cfg.ApprovalQueueChannelID,
		fmt.Sprintf("<:%s:%s>", sub.Name, sub.TempEmojiID))
	if err != nil {
		log.Printf("Failed to post submission %d to the approval queue: %v", sub.ID, err)
	} else if err := e.store.SetApprovalMessage(sub.ID, approvalMsg); err != nil {
		log.Printf("Failed to save approval queue message for submission %d: %v", sub.ID, err)
	}

	entry := fmt.Sprintf("<:%s> moved to <#%s>: <:%s:%s> (by <@%s>)",
		e.cfg.ApproveMarker, e.cfg.ApprovalQueueChannelID, sub.Name, sub.TempEmojiID, sub.AuthorID)
	if _, err := e.notify.PostToQueue(e.cfg.ChangelogChannelID, entry); err != nil {
		log.Printf("Failed to post changelog entry for submission %d: %v", sub.ID, err)
	}

	e.cleanupCouncilMessages(sub)
	e.recordTransition(sub.ID, model.StateCouncilQueue, model.StateApprovalQueue, actor)
	return nil
}

// denyLocked settles a submission as DENIED from whichever queue it is in
// and deletes its ephemeral emoji. Caller holds the shard lock.
func (e *Engine) denyLocked(sub *model.Submission, actor string, changelog bool) error {
	ok, err := e.store.TransitionState(sub.ID, sub.State, model.StateDenied)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotEligible
	}
	log.Printf("Moving submission %d to denied", sub.ID)

	if changelog {
		entry := fmt.Sprintf("<:%s> denied: <:%s:%s>",
			e.cfg.RejectMarker, sub.Name, sub.TempEmojiID)
		if _, err := e.notify.PostToQueue(e.cfg.ChangelogChannelID, entry); err != nil {
			log.Printf("Failed to post changelog entry for submission %d: %v", sub.ID, err)
		}
	}

	if sub.TempEmojiID != "" {
		// Best effort: the denial stands even if the emoji lingers.
		if err := e.emoji.DeleteEphemeral(sub.TempEmojiID); err != nil {
			log.Printf("Failed to delete ephemeral emoji for submission %d: %v", sub.ID, err)
		}
	}

	e.cleanupCouncilMessages(sub)
	e.cleanupApprovalMessage(sub)
	e.recordTransition(sub.ID, sub.State, model.StateDenied, actor)
	return nil
}

// cleanupCouncilMessages clears and deletes the council-stage messages. The
// references are nulled before the gateway deletions so the message-delete
// subscription cannot re-resolve them mid-transition.
func (e *Engine) cleanupCouncilMessages(sub *model.Submission) {
	if sub.CouncilMsgID == "" && sub.SuggestionMsgID == "" {
		return
	}
	if err := e.store.ClearCouncilMessages(sub.ID); err != nil {
		log.Printf("Failed to clear council messages for submission %d: %v", sub.ID, err)
	}
	if sub.CouncilMsgID != "" {
		if err := e.notify.DeleteMessage(e.cfg.CouncilQueueChannelID, sub.CouncilMsgID); err != nil {
			log.Printf("Failed to delete council queue message for submission %d: %v", sub.ID, err)
		}
	}
	if sub.SuggestionMsgID != "" {
		if err := e.notify.DeleteMessage(e.cfg.SuggestionChannelID, sub.SuggestionMsgID); err != nil {
			log.Printf("Failed to delete suggestion log message for submission %d: %v", sub.ID, err)
		}
	}
}

func (e *Engine) cleanupApprovalMessage(sub *model.Submission) {
	if sub.ApprovalMsgID == "" {
		return
	}
	if err := e.store.ClearApprovalMessage(sub.ID); err != nil {
		log.Printf("Failed to clear approval message for submission %d: %v", sub.ID, err)
	}
	if err := e.notify.DeleteMessage(e.cfg.ApprovalQueueChannelID, sub.ApprovalMsgID); err != nil {
		log.Printf("Failed to delete approval queue message for submission %d: %v", sub.ID, err)
	}
}

func (e *Engine) recordTransition(id int64, from, to model.State, actor string) {
	if err := e.store.RecordTransition(id, from, to, actor); err != nil {
		log.Printf("Failed to record transition for submission %d: %v", id, err)
	}
}
