package services

import (
	"testing"
	"time"

	"github.com/askwellapp/askwell-backend/internal/config"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Question{},
		&models.Answer{},
		&models.Report{},
	))
	return db
}

// env bundles the service graph against one in-memory database, wired the
// same way main wires it.
type env struct {
	db         *gorm.DB
	votes      *VoteService
	content    *ContentService
	reports    *ReportService
	moderation *ModerationService
	questions  *QuestionService
	answers    *AnswerService
	categories *CategoryService
	auth       *AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := newTestDB(t)
	locks := NewContentLocks()
	content := NewContentService(db, locks)
	moderation := NewModerationService(db, content, locks)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}

	return &env{
		db:         db,
		votes:      NewVoteService(db, locks),
		content:    content,
		reports:    NewReportService(db, content),
		moderation: moderation,
		questions:  NewQuestionService(db),
		answers:    NewAnswerService(db),
		categories: NewCategoryService(db),
		auth:       NewAuthService(db, cfg, moderation),
	}
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     role,
		Status:   models.UserActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createQuestion(t *testing.T, db *gorm.DB, userID uuid.UUID, status models.Status) *models.Question {
	t.Helper()

	question := models.Question{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          "How do I fix this",
		Description:    "Details of the problem",
		Category:       "general",
		Priority:       models.PriorityMedium,
		Status:         status,
		LastActivityAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

func createAnswer(t *testing.T, db *gorm.DB, questionID, userID uuid.UUID) *models.Answer {
	t.Helper()

	answer := models.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    "Try turning it off and on again",
		Status:     models.StatusActive,
	}
	require.NoError(t, db.Create(&answer).Error)
	return &answer
}

func createReport(t *testing.T, db *gorm.DB, contentID uuid.UUID, contentType models.ContentType, reporterID uuid.UUID) *models.Report {
	t.Helper()

	report := models.Report{
		ID:          uuid.New(),
		ContentID:   contentID,
		ContentType: contentType,
		Reason:      "spam",
		Severity:    models.SeverityMedium,
		ReportedBy:  reporterID,
		Status:      models.ReportPending,
		ActionTaken: models.TakenNone,
	}
	require.NoError(t, db.Create(&report).Error)
	return &report
}
