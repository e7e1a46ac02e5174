package services

import (
	"errors"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteService maintains the per-item voter ledger. The aggregate score is
// always recomputed from the voter set after a mutation, never incremented
// in place.
type VoteService struct {
	db    *gorm.DB
	locks *ContentLocks
}

func NewVoteService(db *gorm.DB, locks *ContentLocks) *VoteService {
	return &VoteService{db: db, locks: locks}
}

func directionValue(direction string) (int, error) {
	switch direction {
	case "up":
		return models.VoteUp, nil
	case "down":
		return models.VoteDown, nil
	}
	return 0, ErrInvalidDirection
}

// CastVote records a vote by voterID on the given content item. A first
// vote appends an entry, an opposite vote flips the existing entry, and a
// same-direction re-vote fails with ErrDuplicateVote. There is no
// retraction; a voter can only flip.
func (s *VoteService) CastVote(contentType models.ContentType, contentID, voterID uuid.UUID, direction string) (*dto.VoteResult, error) {
	value, err := directionValue(direction)
	if err != nil {
		return nil, err
	}
	if !contentType.Valid() {
		return nil, ErrInvalidContentType
	}

	unlock := s.locks.lock(contentType, contentID)
	defer unlock()

	var result *dto.VoteResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		switch contentType {
		case models.ContentQuestion:
			result, err = s.voteQuestion(tx, contentID, voterID, value)
		case models.ContentAnswer:
			result, err = s.voteAnswer(tx, contentID, voterID, value)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *VoteService) voteQuestion(tx *gorm.DB, contentID, voterID uuid.UUID, value int) (*dto.VoteResult, error) {
	var question models.Question
	if err := tx.First(&question, "id = ?", contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	set := question.VoterValues()
	if !set.Apply(voterID.String(), value) {
		return nil, ErrDuplicateVote
	}
	question.SetVoters(set)

	if err := tx.Model(&question).Select("votes", "voters").Updates(&question).Error; err != nil {
		return nil, err
	}
	return &dto.VoteResult{Votes: question.Votes, Voters: set}, nil
}

func (s *VoteService) voteAnswer(tx *gorm.DB, contentID, voterID uuid.UUID, value int) (*dto.VoteResult, error) {
	var answer models.Answer
	if err := tx.First(&answer, "id = ?", contentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}

	set := answer.VoterValues()
	if !set.Apply(voterID.String(), value) {
		return nil, ErrDuplicateVote
	}
	answer.SetVoters(set)

	if err := tx.Model(&answer).Select("votes", "voters").Updates(&answer).Error; err != nil {
		return nil, err
	}
	return &dto.VoteResult{Votes: answer.Votes, Voters: set}, nil
}
