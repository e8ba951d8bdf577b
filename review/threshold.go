package review

// Council vote thresholds. A decision needs a minimum number of votes on the
// winning side, a minimum margin over the losing side, and a minimum total
// turnout.
const (
	winningVotesMin = 10
	marginMin       = 5
	turnoutMin      = 15
)

// shouldPromote reports whether the tally carries the submission into the
// approval queue.
func shouldPromote(yay, nay int) bool {
	return yay >= winningVotesMin && yay-nay >= marginMin && yay+nay >= turnoutMin
}

// shouldDeny reports whether the tally denies the submission. Checked only
// when shouldPromote did not fire; the predicates are mutually exclusive
// under the current constants but the evaluation order does not rely on it.
func shouldDeny(yay, nay int) bool {
	return nay >= winningVotesMin && nay-yay >= marginMin && yay+nay >= turnoutMin
}
