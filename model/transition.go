package model

// Transition is one audit record of a submission state change.
type Transition struct {
	ID           string `json:"id"`
	SubmissionID int64  `json:"submission_id"`
	FromState    State  `json:"from_state"`
	ToState      State  `json:"to_state"`
	Actor        string `json:"actor"`
	CreatedAt    int64  `json:"created_at"`
}
