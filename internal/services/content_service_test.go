package services

import (
	"testing"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModerateQuestionTransition(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	updated, err := e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusUnderReview, "needs a second look")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, updated.Status)
	assert.Equal(t, "needs a second look", updated.ModeratorNote)
	require.NotNil(t, updated.ModeratedBy)
	assert.Equal(t, moderator.ID, *updated.ModeratedBy)
	assert.NotNil(t, updated.ModeratedAt)
}

func TestModerateQuestionInvalidTransition(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)

	// removed is terminal
	question := createQuestion(t, e.db, author.ID, models.StatusRemoved)
	_, err := e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusOpen, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// open cannot go straight to rejected
	question = createQuestion(t, e.db, author.ID, models.StatusOpen)
	_, err = e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusRejected, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// answer statuses are not valid for questions
	_, err = e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusActive, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestModerateQuestionSameStatusIsIdempotent(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusUnderReview)

	updated, err := e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusUnderReview, "still reviewing")
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, updated.Status)
	assert.Equal(t, "still reviewing", updated.ModeratorNote)
}

func TestModerateQuestionNotesAccumulate(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	_, err := e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusUnderReview, "first note")
	require.NoError(t, err)
	updated, err := e.content.ModerateQuestion(question.ID, moderator.ID, models.StatusOpen, "second note")
	require.NoError(t, err)

	assert.Equal(t, "first note\nsecond note", updated.ModeratorNote)
}

func TestModerateAnswerFlagAndRestore(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)
	answer := createAnswer(t, e.db, question.ID, author.ID)

	flagged, err := e.content.ModerateAnswer(answer.ID, moderator.ID, models.StatusFlagged, "reported")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFlagged, flagged.Status)

	restored, err := e.content.ModerateAnswer(answer.ID, moderator.ID, models.StatusActive, "fine after all")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, restored.Status)

	_, err = e.content.ModerateAnswer(answer.ID, moderator.ID, models.StatusResolved, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetQuestionStatusOwnerOnly(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	stranger := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	_, err := e.content.SetQuestionStatus(question.ID, stranger.ID, models.StatusResolved)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := e.content.SetQuestionStatus(question.ID, author.ID, models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)

	// The owner path stamps no moderation metadata.
	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Empty(t, stored.ModeratorNote)
	assert.Nil(t, stored.ModeratedBy)
}

func TestSetQuestionStatusMissing(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)

	_, err := e.content.SetQuestionStatus(uuid.New(), author.ID, models.StatusResolved)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
