package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

func (s *QuestionService) Create(userID uuid.UUID, req *dto.CreateQuestionRequest) (*models.Question, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, errors.New("title and description are required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, errors.New("category is required")
	}

	priority := req.Priority
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
	default:
		priority = models.PriorityMedium
	}

	question := models.Question{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Tags:           datatypes.NewJSONSlice(req.Tags),
		Images:         datatypes.NewJSONSlice(req.Images),
		GPSLocation:    req.GPSLocation,
		Attempts:       req.Attempts,
		Priority:       priority,
		Status:         models.ContentQuestion.InitialStatus(),
		LastActivityAt: time.Now().UTC(),
	}

	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// Get returns a question and bumps its view counter.
func (s *QuestionService) Get(questionID uuid.UUID) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	// Best effort: a failed view bump never fails the read.
	if err := s.db.Model(&question).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		slog.Warn("failed to bump question views", "question_id", questionID.String(), "error", err)
	}
	question.Views++
	return &question, nil
}

// List returns questions filtered by optional owner and category, newest
// first.
func (s *QuestionService) List(userID *uuid.UUID, category string, limit, offset int) ([]models.Question, int64, error) {
	var questions []models.Question
	var total int64

	query := s.db.Model(&models.Question{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// ListByStatus returns questions in a given lifecycle status, used for the
// moderator review queue.
func (s *QuestionService) ListByStatus(status models.Status, limit, offset int) ([]models.Question, int64, error) {
	var questions []models.Question
	var total int64

	query := s.db.Model(&models.Question{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}
