package db

import (
	"database/sql"
	"time"

	"github.com/Wolfiri/b1nb0t/model"
)

// rowScanner is an interface that can be satisfied by *sql.Row or *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const submissionColumns = `
	id, name, author_id, content, temp_emoji_id,
	suggestion_queue_msg, council_queue_msg, approval_queue_msg,
	yay, nay, state, created_at`

// scanSubmission scans a row into a Submission struct.
func scanSubmission(scanner rowScanner) (*model.Submission, error) {
	var sub model.Submission
	err := scanner.Scan(
		&sub.ID, &sub.Name, &sub.AuthorID, &sub.Content, &sub.TempEmojiID,
		&sub.SuggestionMsgID, &sub.CouncilMsgID, &sub.ApprovalMsgID,
		&sub.Yay, &sub.Nay, &sub.State, &sub.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Return nil, nil if no submission is found
		}
		return nil, err
	}
	return &sub, nil
}

// CreateSubmission inserts a new submission in COUNCIL_QUEUE with zero tallies
// and returns its sequential ID.
func CreateSubmission(name, authorID string) (int64, error) {
	tx, err := DB.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	newID, err := getNextSubmissionID(tx)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(`INSERT INTO submissions (id, name, author_id, state, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		newID, name, authorID, model.StateCouncilQueue, time.Now().Unix())
	if err != nil {
		return 0, err
	}

	return newID, tx.Commit()
}

// DeleteSubmission removes a submission row. Only the intake flow uses this,
// to roll back a record whose ephemeral emoji could not be created; settled
// submissions are kept forever.
func DeleteSubmission(id int64) error {
	_, err := DB.Exec("DELETE FROM submissions WHERE id = ?", id)
	return err
}

// GetSubmission retrieves a submission by its ID.
func GetSubmission(id int64) (*model.Submission, error) {
	row := DB.QueryRow(`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

// GetCouncilQueueByMessageID resolves a council queue message to the
// submission still being voted on. Submissions that already left
// COUNCIL_QUEUE are not matched, so late votes fall through to (nil, nil).
func GetCouncilQueueByMessageID(messageID string) (*model.Submission, error) {
	row := DB.QueryRow(`SELECT `+submissionColumns+` FROM submissions
		WHERE council_queue_msg = ? AND state = ?`, messageID, model.StateCouncilQueue)
	return scanSubmission(row)
}

// GetActiveByMessageID resolves a council or approval queue message to a
// non-terminal submission. Used by the message-delete subscription.
func GetActiveByMessageID(messageID string) (*model.Submission, error) {
	row := DB.QueryRow(`SELECT `+submissionColumns+` FROM submissions
		WHERE (council_queue_msg = ? OR approval_queue_msg = ?)
		AND state != ? AND state != ?`,
		messageID, messageID, model.StateDenied, model.StateApproved)
	return scanSubmission(row)
}

// AdjustTally applies signed deltas to a submission's vote counts. The update
// is guarded on COUNCIL_QUEUE so a vote racing a transition cannot mutate a
// settled row. Deltas are applied as delivered; counts are not floored at
// zero, matching the trust-the-event semantics of reaction removal.
func AdjustTally(id int64, yayDelta, nayDelta int) error {
	_, err := DB.Exec(`UPDATE submissions SET yay = yay + ?, nay = nay + ?
		WHERE id = ? AND state = ?`,
		yayDelta, nayDelta, id, model.StateCouncilQueue)
	return err
}

// TransitionState moves a submission from one state to another as a single
// compare-and-swap. It reports false when the submission was not in the
// expected source state, which callers treat as "not eligible".
func TransitionState(id int64, from, to model.State) (bool, error) {
	res, err := DB.Exec("UPDATE submissions SET state = ? WHERE id = ? AND state = ?", to, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetIntakeRefs stores the announcement snapshot, ephemeral emoji and queue
// message references produced by the intake flow.
func SetIntakeRefs(id int64, content, tempEmojiID, councilMsgID, suggestionMsgID string) error {
	_, err := DB.Exec(`UPDATE submissions SET content = ?, temp_emoji_id = ?,
		council_queue_msg = ?, suggestion_queue_msg = ? WHERE id = ?`,
		content, tempEmojiID, councilMsgID, suggestionMsgID, id)
	return err
}

// SetApprovalMessage records the approval queue message reference.
func SetApprovalMessage(id int64, messageID string) error {
	_, err := DB.Exec("UPDATE submissions SET approval_queue_msg = ? WHERE id = ?", messageID, id)
	return err
}

// ClearCouncilMessages nulls both council-stage message references.
func ClearCouncilMessages(id int64) error {
	_, err := DB.Exec("UPDATE submissions SET council_queue_msg = '', suggestion_queue_msg = '' WHERE id = ?", id)
	return err
}

// ClearApprovalMessage nulls the approval queue message reference.
func ClearApprovalMessage(id int64) error {
	_, err := DB.Exec("UPDATE submissions SET approval_queue_msg = '' WHERE id = ?", id)
	return err
}
