package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionTransitions(t *testing.T) {
	assert.True(t, ContentQuestion.CanTransition(StatusOpen, StatusUnderReview))
	assert.True(t, ContentQuestion.CanTransition(StatusUnderReview, StatusRejected))
	assert.True(t, ContentQuestion.CanTransition(StatusResolved, StatusRemoved))

	assert.False(t, ContentQuestion.CanTransition(StatusOpen, StatusRejected))
	assert.False(t, ContentQuestion.CanTransition(StatusRemoved, StatusOpen))
	assert.False(t, ContentQuestion.CanTransition(StatusRejected, StatusOpen))
}

func TestAnswerTransitions(t *testing.T) {
	assert.True(t, ContentAnswer.CanTransition(StatusActive, StatusFlagged))
	assert.True(t, ContentAnswer.CanTransition(StatusFlagged, StatusActive))
	assert.False(t, ContentAnswer.CanTransition(StatusRemoved, StatusActive))

	assert.False(t, ContentAnswer.ValidStatus(StatusOpen))
	assert.True(t, ContentAnswer.ValidStatus(StatusRemoved))
	assert.False(t, ContentQuestion.ValidStatus(StatusActive))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusOpen, ContentQuestion.InitialStatus())
	assert.Equal(t, StatusActive, ContentAnswer.InitialStatus())
}

func TestModerationStampAppendsNotes(t *testing.T) {
	var m Moderation
	first := uuid.New()
	second := uuid.New()
	now := time.Now().UTC()

	m.Stamp(first, "spam", now)
	assert.Equal(t, "spam", m.ModeratorNote)
	require.NotNil(t, m.ModeratedBy)
	assert.Equal(t, first, *m.ModeratedBy)

	m.Stamp(second, "confirmed", now.Add(time.Minute))
	assert.Equal(t, "spam\nconfirmed", m.ModeratorNote)
	assert.Equal(t, second, *m.ModeratedBy)

	// an empty note re-stamps actor and time without touching the note
	m.Stamp(first, "", now.Add(2*time.Minute))
	assert.Equal(t, "spam\nconfirmed", m.ModeratorNote)
}

func TestReportActionTaken(t *testing.T) {
	assert.Equal(t, TakenContentRemoved, ActionDelete.Taken())
	assert.Equal(t, TakenContentRemoved, ActionRemove.Taken())
	assert.Equal(t, TakenWarning, ActionWarn.Taken())
	assert.Equal(t, TakenNone, ActionApprove.Taken())
	assert.False(t, ReportAction("escalate").Valid())
}
