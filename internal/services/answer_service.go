package services

import (
	"errors"
	"strings"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnswerService struct {
	db *gorm.DB
}

func NewAnswerService(db *gorm.DB) *AnswerService {
	return &AnswerService{db: db}
}

// Create stores a new answer and increments the parent question's counter
// in the same transaction.
func (s *AnswerService) Create(userID, questionID uuid.UUID, content string) (*models.Answer, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("content is required")
	}

	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	answer := models.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		UserID:     userID,
		Content:    content,
		Status:     models.ContentAnswer.InitialStatus(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}
		return tx.Model(&models.Question{}).
			Where("id = ?", questionID).
			UpdateColumn("answers_count", gorm.Expr("answers_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// Get returns a single answer by id.
func (s *AnswerService) Get(answerID uuid.UUID) (*models.Answer, error) {
	var answer models.Answer
	if err := s.db.First(&answer, "id = ?", answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// ListByQuestion returns all answers under a question, newest first.
func (s *AnswerService) ListByQuestion(questionID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("question_id = ?", questionID).Order("created_at DESC").Find(&answers).Error
	return answers, err
}

// ListRecent returns the latest answers across all questions.
func (s *AnswerService) ListRecent(limit, offset int) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&answers).Error
	return answers, err
}

// ListByUser returns all answers authored by a user, newest first.
func (s *AnswerService) ListByUser(userID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&answers).Error
	return answers, err
}
