package services

import (
	"testing"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReportDefaults(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	reporter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	report, err := e.reports.Submit(reporter.ID, &dto.CreateReportRequest{
		ContentID:   question.ID,
		ContentType: "question",
		Reason:      "spam",
		Severity:    "extreme",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, report.Status)
	assert.Equal(t, models.TakenNone, report.ActionTaken)
	assert.Equal(t, models.SeverityMedium, report.Severity)
	assert.Equal(t, reporter.ID, report.ReportedBy)
}

func TestSubmitReportValidation(t *testing.T) {
	e := newEnv(t)
	reporter := createUser(t, e.db, models.RoleUser)

	_, err := e.reports.Submit(reporter.ID, &dto.CreateReportRequest{
		ContentID:   uuid.New(),
		ContentType: "comment",
		Reason:      "spam",
	})
	assert.ErrorIs(t, err, ErrInvalidContentType)

	_, err = e.reports.Submit(reporter.ID, &dto.CreateReportRequest{
		ContentID:   uuid.New(),
		ContentType: "question",
		Reason:      "   ",
	})
	assert.Error(t, err)
}

func TestSubmitReportNeverDeduplicates(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	reporter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	for i := 0; i < 3; i++ {
		_, err := e.reports.Submit(reporter.ID, &dto.CreateReportRequest{
			ContentID:   question.ID,
			ContentType: "question",
			Reason:      "spam",
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, e.db.Model(&models.Report{}).Where("content_id = ?", question.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestSubmitByModeratorEscalates(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)

	report, err := e.reports.SubmitByModerator(question.ID, moderator.ID, "inappropriate", "escalating for admin review")
	require.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, report.Severity)
	assert.Equal(t, models.ReportPending, report.Status)

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, models.StatusUnderReview, stored.Status)
}

func TestSubmitByModeratorMissingQuestion(t *testing.T) {
	e := newEnv(t)
	moderator := createUser(t, e.db, models.RoleModerator)

	_, err := e.reports.SubmitByModerator(uuid.New(), moderator.ID, "spam", "")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	var count int64
	require.NoError(t, e.db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitByModeratorFailureLeavesNoReport(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	moderator := createUser(t, e.db, models.RoleModerator)
	question := createQuestion(t, e.db, author.ID, models.StatusResolved)

	_, err := e.reports.SubmitByModerator(question.ID, moderator.ID, "spam", "")
	require.ErrorIs(t, err, ErrInvalidTransition)

	// The whole escalation rolls back together: no report row, no
	// status change.
	var count int64
	require.NoError(t, e.db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)

	var stored models.Question
	require.NoError(t, e.db.First(&stored, "id = ?", question.ID).Error)
	assert.Equal(t, models.StatusResolved, stored.Status)
}

func TestListReportsFilters(t *testing.T) {
	e := newEnv(t)
	author := createUser(t, e.db, models.RoleUser)
	reporter := createUser(t, e.db, models.RoleUser)
	question := createQuestion(t, e.db, author.ID, models.StatusOpen)
	answer := createAnswer(t, e.db, question.ID, author.ID)

	createReport(t, e.db, question.ID, models.ContentQuestion, reporter.ID)
	answerReport := createReport(t, e.db, answer.ID, models.ContentAnswer, reporter.ID)
	require.NoError(t, e.db.Model(answerReport).Update("status", models.ReportReviewed).Error)

	pending, total, err := e.reports.List(models.ReportPending, "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ContentQuestion, pending[0].ContentType)

	answers, total, err := e.reports.List("", models.ContentAnswer, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, answers, 1)
	assert.Equal(t, answer.ID, answers[0].ContentID)
}
