package models

// VoterSet is the per-user vote record on a content item, keyed by user id.
// The aggregate score is always derived from it by Sum, never mutated
// independently.
type VoterSet map[string]int

const (
	VoteUp   = 1
	VoteDown = -1
)

// Apply sets the voter's value. It returns false when the voter already
// holds the same value (a same-direction re-vote), leaving the set
// unchanged; an opposite value overwrites the existing entry.
func (v VoterSet) Apply(userID string, value int) bool {
	if prev, ok := v[userID]; ok && prev == value {
		return false
	}
	v[userID] = value
	return true
}

// Sum returns the aggregate score of all current votes.
func (v VoterSet) Sum() int {
	total := 0
	for _, value := range v {
		total += value
	}
	return total
}
