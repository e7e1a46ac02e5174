package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoterSetApply(t *testing.T) {
	set := VoterSet{}

	assert.True(t, set.Apply("alice", VoteUp))
	assert.Equal(t, 1, set.Sum())

	// same direction again is a no-op failure
	assert.False(t, set.Apply("alice", VoteUp))
	assert.Equal(t, 1, set.Sum())

	// opposite direction flips the entry, moving the sum by two
	assert.True(t, set.Apply("alice", VoteDown))
	assert.Equal(t, -1, set.Sum())
	assert.Len(t, set, 1)
}

func TestVoterSetSum(t *testing.T) {
	set := VoterSet{"a": VoteUp, "b": VoteUp, "c": VoteDown}
	assert.Equal(t, 1, set.Sum())
	assert.Equal(t, 0, VoterSet{}.Sum())
}
