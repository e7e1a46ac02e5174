package services

import (
	"testing"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionDefaults(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)

	question, err := e.questions.Create(author.ID, &dto.CreateQuestionRequest{
		Title:       "Leaking faucet",
		Description: "Water everywhere",
		Category:    "plumbing",
		Tags:        []string{"water", "urgent"},
		Priority:    "catastrophic",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, question.Status)
	assert.Equal(t, models.PriorityMedium, question.Priority)
	assert.Equal(t, []string{"water", "urgent"}, []string(question.Tags))
	assert.Zero(t, question.Votes)
	assert.Zero(t, question.AnswersCount)
}

func TestCreateQuestionValidation(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)

	_, err := e.questions.Create(author.ID, &dto.CreateQuestionRequest{Title: " ", Description: "x", Category: "c"})
	assert.Error(t, err)

	_, err = e.questions.Create(author.ID, &dto.CreateQuestionRequest{Title: "x", Description: "y", Category: ""})
	assert.Error(t, err)
}

func TestGetQuestionBumpsViews(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	got, err := e.questions.Get(question.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = e.questions.Get(question.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	_, err = e.questions.Get(uuid.New())
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestListQuestionsFilters(t *testing.T) {
	e := newEnv(t)
	alice := createUser(t, e.db, models.RoleUser)
	bob := createUser(t, e.db, models.RoleUser)

	q1 := createQuestion(t, e.db, alice.ID, models.StatusOpen)
	require.NoError(t, e.db.Model(q1).Update("category", "plumbing").Error)
	createQuestion(t, e.db, bob.ID, models.StatusOpen)

	mine, total, err := e.questions.List(&alice.ID, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)

	byCategory, total, err := e.questions.List(nil, "plumbing", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, byCategory, 1)
	assert.Equal(t, q1.ID, byCategory[0].ID)
}

func TestListByStatusReviewQueue(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	createQuestion(t, e.db, author.ID, models.StatusOpen)
	flagged := createQuestion(t, e.db, author.ID, models.StatusUnderReview)

	queue, total, err := e.questions.ListByStatus(models.StatusUnderReview, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, queue, 1)
	assert.Equal(t, flagged.ID, queue[0].ID)
}

func TestCreateAnswerIncrementsCount(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	helper := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	answer, err := e.answers.Create(helper.ID, question.ID, "Check the washer")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, answer.Status)

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, 1, stored.AnswersCount)

	_, err = e.answers.Create(helper.ID, uuid.New(), "orphan")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}
