package model

// State is the review state of a submission.
type State int

const (
	// StateCouncilQueue is the initial state: the submission is being voted
	// on by the emoji council.
	StateCouncilQueue State = iota
	// StateApprovalQueue means the council promoted the submission and it is
	// awaiting a final moderator decision.
	StateApprovalQueue
	// StateDenied is terminal.
	StateDenied
	// StateApproved is terminal.
	StateApproved
)

// Terminal reports whether no further transitions are allowed from s.
func (s State) Terminal() bool {
	return s == StateDenied || s == StateApproved
}

func (s State) String() string {
	switch s {
	case StateCouncilQueue:
		return "COUNCIL_QUEUE"
	case StateApprovalQueue:
		return "APPROVAL_QUEUE"
	case StateDenied:
		return "DENIED"
	case StateApproved:
		return "APPROVED"
	default:
		return "UNKNOWN"
	}
}

// Submission represents an emoji submission record from the submissions table.
type Submission struct {
	ID              int64
	Name            string
	AuthorID        string
	Content         string
	TempEmojiID     string
	SuggestionMsgID string
	CouncilMsgID    string
	ApprovalMsgID   string
	Yay             int
	Nay             int
	State           State
	CreatedAt       int64
}
