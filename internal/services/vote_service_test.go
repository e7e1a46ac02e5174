package services

import (
	"sync"
	"testing"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteFirstVote(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	voter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	result, err := e.votes.CastVote(models.ContentQuestion, question.ID, voter.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Votes)
	assert.Equal(t, models.VoteUp, result.Voters[voter.ID.String()])

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, 1, stored.Votes)
	assert.Equal(t, models.VoteUp, stored.VoterValues()[voter.ID.String()])
}

func TestCastVoteDuplicateRejected(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	voter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	_, err := e.votes.CastVote(models.ContentQuestion, question.ID, voter.ID, "down")
	require.NoError(t, err)

	_, err = e.votes.CastVote(models.ContentQuestion, question.ID, voter.ID, "down")
	assert.ErrorIs(t, err, ErrDuplicateVote)

	// The ledger is untouched by the rejected cast.
	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, -1, stored.Votes)
	assert.Len(t, stored.VoterValues(), 1)
}

func TestCastVoteFlipChangesScoreByTwo(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	voter := createUser(t, e.db, models.RoleUser)
	answer := createAnswer(t, e.db, createQuestion(t, e.db, author.ID, models.StatusOpen).ID, author.ID)

	result, err := e.votes.CastVote(models.ContentAnswer, answer.ID, voter.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Votes)

	result, err = e.votes.CastVote(models.ContentAnswer, answer.ID, voter.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, -1, result.Votes)
	assert.Len(t, result.Voters, 1)
}

func TestCastVoteScoreIsSumOfLedger(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	// 7 up, 3 down from 10 distinct voters.
	for i := 0; i < 10; i++ {
		voter := createUser(t, e.db, models.RoleUser)
		direction := "up"
		if i >= 7 {
			direction = "down"
		}
		_, err := e.votes.CastVote(models.ContentQuestion, question.ID, voter.ID, direction)
		require.NoError(t, err)
	}

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	set := stored.VoterValues()
	assert.Len(t, set, 10)
	assert.Equal(t, 4, stored.Votes)
	assert.Equal(t, set.Sum(), stored.Votes)
}

func TestCastVoteInvalidInputs(t *testing.T) {
	e := newEnv(t)
	voter := createUser(t, e.db, models.RoleUser)

	_, err := e.votes.CastVote(models.ContentQuestion, uuid.New(), voter.ID, "sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)

	_, err = e.votes.CastVote(models.ContentType("comment"), uuid.New(), voter.ID, "up")
	assert.ErrorIs(t, err, ErrInvalidContentType)

	_, err = e.votes.CastVote(models.ContentQuestion, uuid.New(), voter.ID, "up")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = e.votes.CastVote(models.ContentAnswer, uuid.New(), voter.ID, "up")
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestCastVoteConcurrentDistinctUsers(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	voters := make([]uuid.UUID, 16)
	for i := range voters {
		voters[i] = createUser(t, e.db, models.RoleUser).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(voters))
	for i, voterID := range voters {
		wg.Add(1)
		direction := "up"
		if i%4 == 0 {
			direction = "down"
		}
		go func(id uuid.UUID, dir string) {
			defer wg.Done()
			_, err := e.votes.CastVote(models.ContentQuestion, question.ID, id, dir)
			errs <- err
		}(voterID, direction)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	// No lost updates: every voter's entry landed and the aggregate is
	// exactly the sum of the ledger. 12 up, 4 down.
	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	set := stored.VoterValues()
	assert.Len(t, set, len(voters))
	assert.Equal(t, set.Sum(), stored.Votes)
	assert.Equal(t, 8, stored.Votes)
}

func TestCastVoteConcurrentSameUser(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	voter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.votes.CastVote(models.ContentQuestion, question.ID, voter.ID, "up")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var duplicates int
	for err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrDuplicateVote)
			duplicates++
		}
	}
	assert.Equal(t, 1, duplicates)

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, 1, stored.Votes)
	assert.Len(t, stored.VoterValues(), 1)
}
