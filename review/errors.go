package review

import "errors"

var (
	// ErrNotFound means no submission matched the lookup. Vote handlers
	// treat this as a normal outcome and drop the event silently.
	ErrNotFound = errors.New("review: submission not found")

	// ErrNotEligible means the submission is not in a state the requested
	// transition can leave from.
	ErrNotEligible = errors.New("review: submission not eligible for transition")

	// ErrNameRequired means a final emoji name is needed to approve out of
	// the approval queue.
	ErrNameRequired = errors.New("review: final emoji name required")
)
