package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/Wolfiri/b1nb0t/model"
)

// RecordTransition appends one audit record for a submission state change.
// Transition rows are never deleted.
func RecordTransition(submissionID int64, from, to model.State, actor string) error {
	_, err := DB.Exec(`INSERT INTO transitions (id, submission_id, from_state, to_state, actor, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), submissionID, from, to, actor, time.Now().Unix())
	return err
}

// ListTransitions returns the audit trail for a submission in chronological
// order.
func ListTransitions(submissionID int64) ([]*model.Transition, error) {
	rows, err := DB.Query(`SELECT id, submission_id, from_state, to_state, actor, created_at
		FROM transitions WHERE submission_id = ? ORDER BY created_at ASC, rowid ASC`, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transitions []*model.Transition
	for rows.Next() {
		var t model.Transition
		if err := rows.Scan(&t.ID, &t.SubmissionID, &t.FromState, &t.ToState, &t.Actor, &t.CreatedAt); err != nil {
			return nil, err
		}
		transitions = append(transitions, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transitions, nil
}
