package services

import (
	"errors"
	"time"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentService owns the lifecycle state machine for questions and
// answers. Transitions driven by a moderation actor stamp moderator id,
// timestamp and append the note; owner transitions do not.
type ContentService struct {
	db    *gorm.DB
	locks *ContentLocks
}

func NewContentService(db *gorm.DB, locks *ContentLocks) *ContentService {
	return &ContentService{db: db, locks: locks}
}

// ModerateQuestion transitions a question to newStatus on behalf of a
// moderation actor, enforcing the transition table.
func (s *ContentService) ModerateQuestion(questionID, moderatorID uuid.UUID, newStatus models.Status, note string) (*models.Question, error) {
	unlock := s.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	var question models.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		return s.applyQuestionStatus(tx, &question, moderatorID, newStatus, note)
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// applyQuestionStatus validates and writes a moderator-driven transition on
// an already-loaded question within tx.
func (s *ContentService) applyQuestionStatus(tx *gorm.DB, question *models.Question, moderatorID uuid.UUID, newStatus models.Status, note string) error {
	if !models.ContentQuestion.ValidStatus(newStatus) {
		return ErrInvalidTransition
	}
	if newStatus != question.Status && !models.ContentQuestion.CanTransition(question.Status, newStatus) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	question.Status = newStatus
	question.LastActivityAt = now
	question.Stamp(moderatorID, note, now)

	return tx.Model(question).
		Select("status", "last_activity_at", "moderator_note", "moderated_by", "moderated_at").
		Updates(question).Error
}

// ModerateAnswer transitions an answer to newStatus on behalf of a
// moderation actor.
func (s *ContentService) ModerateAnswer(answerID, moderatorID uuid.UUID, newStatus models.Status, note string) (*models.Answer, error) {
	unlock := s.locks.lock(models.ContentAnswer, answerID)
	defer unlock()

	var answer models.Answer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&answer, "id = ?", answerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnswerNotFound
			}
			return err
		}

		return s.applyAnswerStatus(tx, &answer, moderatorID, newStatus, note)
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// applyAnswerStatus validates and writes a moderator-driven transition on
// an already-loaded answer within tx.
func (s *ContentService) applyAnswerStatus(tx *gorm.DB, answer *models.Answer, moderatorID uuid.UUID, newStatus models.Status, note string) error {
	if !models.ContentAnswer.ValidStatus(newStatus) {
		return ErrInvalidTransition
	}
	if newStatus != answer.Status && !models.ContentAnswer.CanTransition(answer.Status, newStatus) {
		return ErrInvalidTransition
	}

	answer.Status = newStatus
	answer.Stamp(moderatorID, note, time.Now().UTC())

	return tx.Model(answer).
		Select("status", "moderator_note", "moderated_by", "moderated_at").
		Updates(answer).Error
}

// SetQuestionStatus is the owner path: the authoring user changes the
// status of their own question (typically marking it resolved). No
// moderation metadata is stamped.
func (s *ContentService) SetQuestionStatus(questionID, actorID uuid.UUID, newStatus models.Status) (*models.Question, error) {
	unlock := s.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	var question models.Question
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if question.UserID != actorID {
			return ErrNotOwner
		}
		if !models.ContentQuestion.ValidStatus(newStatus) {
			return ErrInvalidTransition
		}
		if newStatus != question.Status && !models.ContentQuestion.CanTransition(question.Status, newStatus) {
			return ErrInvalidTransition
		}

		question.Status = newStatus
		question.LastActivityAt = time.Now().UTC()
		return tx.Model(&question).Select("status", "last_activity_at").Updates(&question).Error
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}
