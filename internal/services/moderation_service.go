package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService orchestrates the cross-entity effects of a moderation
// decision: content lifecycle transitions, report resolution, and cascading
// deletes. It is the only place a content decision and its report side
// effects are combined, so the "one decision resolves every pending report"
// rule stays in a single auditable operation.
type ModerationService struct {
	db      *gorm.DB
	content *ContentService
	locks   *ContentLocks
}

func NewModerationService(db *gorm.DB, content *ContentService, locks *ContentLocks) *ModerationService {
	return &ModerationService{db: db, content: content, locks: locks}
}

// ResolveReport applies a moderator decision to a single report and to the
// content it references. Re-resolving a report that is no longer pending
// fails with ErrAlreadyResolved.
func (s *ModerationService) ResolveReport(reportID, moderatorID uuid.UUID, action models.ReportAction, note string) (*models.Report, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}

	// First load only resolves the lock key; a report's content reference
	// never changes. The pending check happens again under the lock, inside
	// the transaction, so two concurrent resolutions cannot both observe
	// pending and double-apply.
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	unlock := s.locks.lock(report.ContentType, report.ContentID)
	defer unlock()

	now := time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.Status != models.ReportPending {
			return ErrAlreadyResolved
		}

		switch action {
		case models.ActionRemove:
			if err := s.removeContent(tx, report.ContentType, report.ContentID, moderatorID, note); err != nil {
				return err
			}
		case models.ActionDelete:
			if err := s.deleteContent(tx, report.ContentType, report.ContentID, report.ID); err != nil {
				return err
			}
		case models.ActionWarn:
			if err := s.warnContentOwner(tx, report.ContentType, report.ContentID, moderatorID, note); err != nil {
				return err
			}
		case models.ActionApprove, models.ActionReject:
			if report.ContentType == models.ContentQuestion {
				target := models.StatusOpen
				if action == models.ActionReject {
					target = models.StatusRejected
				}
				if err := s.applyQuestionDecision(tx, report.ContentID, moderatorID, target, note); err != nil {
					return err
				}
			}
		}

		report.Status = models.ReportReviewed
		report.ActionTaken = action.Taken()
		report.Stamp(moderatorID, note, now)
		if err := tx.Model(&report).
			Select("status", "action_taken", "moderator_note", "moderated_by", "moderated_at").
			Updates(&report).Error; err != nil {
			return err
		}

		// Any sibling reports against the same item are settled by the
		// same decision.
		return s.resolvePendingReportsFor(tx, report.ContentID, report.ContentType, moderatorID, note, action.Taken(), now)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// HandleReportedQuestion applies an admin decision directly to a reported
// question: approve reopens it, reject rejects it, warn reopens it and
// records a warning against the author, delete removes the question and
// everything referencing it. The returned question is nil after a delete.
func (s *ModerationService) HandleReportedQuestion(questionID, moderatorID uuid.UUID, action models.ReportAction, note string) (*models.Question, error) {
	unlock := s.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch action {
		case models.ActionApprove:
			if err := s.content.applyQuestionStatus(tx, &question, moderatorID, models.StatusOpen, note); err != nil {
				return err
			}
		case models.ActionReject:
			if err := s.content.applyQuestionStatus(tx, &question, moderatorID, models.StatusRejected, note); err != nil {
				return err
			}
		case models.ActionWarn:
			if err := s.content.applyQuestionStatus(tx, &question, moderatorID, models.StatusOpen, note); err != nil {
				return err
			}
			if err := s.recordWarning(tx, question.UserID, moderatorID, note); err != nil {
				return err
			}
		case models.ActionDelete:
			deleted = true
			return s.deleteQuestionCascade(tx, questionID, uuid.Nil)
		default:
			return ErrInvalidAction
		}

		return s.resolvePendingReportsFor(tx, questionID, models.ContentQuestion, moderatorID, note, action.Taken(), now)
	})
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, nil
	}
	return &question, nil
}

// resolvePendingReportsFor settles every pending report against one content
// item with a single decision. Pending reports carry no prior moderator
// note, so the note is written directly rather than appended.
func (s *ModerationService) resolvePendingReportsFor(tx *gorm.DB, contentID uuid.UUID, contentType models.ContentType, moderatorID uuid.UUID, note string, taken models.ActionTaken, at time.Time) error {
	return tx.Model(&models.Report{}).
		Where("content_id = ? AND content_type = ? AND status = ?", contentID, contentType, models.ReportPending).
		Updates(map[string]interface{}{
			"status":         models.ReportReviewed,
			"action_taken":   taken,
			"moderator_note": note,
			"moderated_by":   moderatorID,
			"moderated_at":   at,
		}).Error
}

// removeContent soft-transitions content to removed; the record stays
// visible but inactive. Missing content is tolerated: the report holds a
// weak reference and the item may already be gone.
func (s *ModerationService) removeContent(tx *gorm.DB, contentType models.ContentType, contentID, moderatorID uuid.UUID, note string) error {
	switch contentType {
	case models.ContentQuestion:
		var question models.Question
		if err := tx.First(&question, "id = ?", contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return s.content.applyQuestionStatus(tx, &question, moderatorID, models.StatusRemoved, note)
	case models.ContentAnswer:
		var answer models.Answer
		if err := tx.First(&answer, "id = ?", contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return s.content.applyAnswerStatus(tx, &answer, moderatorID, models.StatusRemoved, note)
	}
	return ErrInvalidContentType
}

// deleteContent hard-deletes content referenced by a report. keepReport is
// the report carrying the decision; it survives as the audit record while
// every other report against the item is cascade-deleted.
func (s *ModerationService) deleteContent(tx *gorm.DB, contentType models.ContentType, contentID, keepReport uuid.UUID) error {
	switch contentType {
	case models.ContentQuestion:
		return s.deleteQuestionCascade(tx, contentID, keepReport)
	case models.ContentAnswer:
		return s.deleteAnswerCascade(tx, contentID, keepReport)
	}
	return ErrInvalidContentType
}

// warnContentOwner records a warning on the content author's moderation
// history. Actual notification delivery lives outside this service.
func (s *ModerationService) warnContentOwner(tx *gorm.DB, contentType models.ContentType, contentID, moderatorID uuid.UUID, note string) error {
	var ownerID uuid.UUID
	switch contentType {
	case models.ContentQuestion:
		var question models.Question
		if err := tx.First(&question, "id = ?", contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		ownerID = question.UserID
	case models.ContentAnswer:
		var answer models.Answer
		if err := tx.First(&answer, "id = ?", contentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		ownerID = answer.UserID
	default:
		return ErrInvalidContentType
	}
	return s.recordWarning(tx, ownerID, moderatorID, note)
}

func (s *ModerationService) recordWarning(tx *gorm.DB, userID, moderatorID uuid.UUID, reason string) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	history := append(user.ModerationHistory, models.ModerationEntry{
		Action:      "warning",
		Reason:      reason,
		ModeratedBy: moderatorID.String(),
		Date:        time.Now().UTC(),
	})
	if err := tx.Model(&user).Update("moderation_history", history).Error; err != nil {
		return err
	}

	slog.Info("warning issued to user", "user_id", userID.String(), "moderator_id", moderatorID.String())
	return nil
}

// applyQuestionDecision loads and transitions a question inside tx,
// tolerating a missing record (weak reference from the report).
func (s *ModerationService) applyQuestionDecision(tx *gorm.DB, questionID, moderatorID uuid.UUID, target models.Status, note string) error {
	var question models.Question
	if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.content.applyQuestionStatus(tx, &question, moderatorID, target, note)
}

// DeleteQuestion hard-deletes a question with its answers and reports.
func (s *ModerationService) DeleteQuestion(questionID uuid.UUID) error {
	unlock := s.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteQuestionCascade(tx, questionID, uuid.Nil)
	})
}

// DeleteResolvedQuestion deletes a question only when it has been resolved.
func (s *ModerationService) DeleteResolvedQuestion(questionID uuid.UUID) error {
	unlock := s.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	var question models.Question
	if err := s.db.First(&question, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	if question.Status != models.StatusResolved {
		return ErrInvalidTransition
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteQuestionCascade(tx, questionID, uuid.Nil)
	})
}

// deleteQuestionCascade removes a question, every answer under it, and
// every report referencing either, within tx. keepReport (when non-nil) is
// spared as the audit record of the decision that triggered the delete.
// Each step is a delete by id or predicate, so a retried cascade re-runs
// cleanly.
func (s *ModerationService) deleteQuestionCascade(tx *gorm.DB, questionID, keepReport uuid.UUID) error {
	var answerIDs []uuid.UUID
	if err := tx.Model(&models.Answer{}).Where("question_id = ?", questionID).Pluck("id", &answerIDs).Error; err != nil {
		return &CascadeError{Step: "collect answers", Err: err}
	}

	if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
		return &CascadeError{Step: "delete answers", Err: err}
	}

	reportScope := tx.Session(&gorm.Session{NewDB: true}).
		Where("content_id = ? AND content_type = ?", questionID, models.ContentQuestion)
	if len(answerIDs) > 0 {
		reportScope = reportScope.Or("content_id IN ? AND content_type = ?", answerIDs, models.ContentAnswer)
	}
	reportQuery := tx.Where(reportScope)
	if keepReport != uuid.Nil {
		reportQuery = reportQuery.Where("id <> ?", keepReport)
	}
	if err := reportQuery.Delete(&models.Report{}).Error; err != nil {
		return &CascadeError{Step: "delete reports", Err: err}
	}

	if err := tx.Where("id = ?", questionID).Delete(&models.Question{}).Error; err != nil {
		return &CascadeError{Step: "delete question", Err: err}
	}
	return nil
}

// DeleteAnswer hard-deletes an answer, its reports, and decrements the
// parent question's answer count without going below zero.
func (s *ModerationService) DeleteAnswer(answerID uuid.UUID) error {
	unlock := s.locks.lock(models.ContentAnswer, answerID)
	defer unlock()

	var answer models.Answer
	if err := s.db.First(&answer, "id = ?", answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnswerNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.deleteAnswerCascade(tx, answerID, uuid.Nil)
	})
}

func (s *ModerationService) deleteAnswerCascade(tx *gorm.DB, answerID, keepReport uuid.UUID) error {
	var answer models.Answer
	if err := tx.First(&answer, "id = ?", answerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return &CascadeError{Step: "load answer", Err: err}
	}

	if err := tx.Where("id = ?", answerID).Delete(&models.Answer{}).Error; err != nil {
		return &CascadeError{Step: "delete answer", Err: err}
	}

	// Floor guard: never decrement below zero even under concurrent deletes.
	if err := tx.Model(&models.Question{}).
		Where("id = ? AND answers_count > 0", answer.QuestionID).
		UpdateColumn("answers_count", gorm.Expr("answers_count - 1")).Error; err != nil {
		return &CascadeError{Step: "decrement answer count", Err: err}
	}

	reportQuery := tx.Where("content_id = ? AND content_type = ?", answerID, models.ContentAnswer)
	if keepReport != uuid.Nil {
		reportQuery = reportQuery.Where("id <> ?", keepReport)
	}
	if err := reportQuery.Delete(&models.Report{}).Error; err != nil {
		return &CascadeError{Step: "delete reports", Err: err}
	}
	return nil
}

// DeleteUser removes a user and everything they own: their questions (each
// with the full answer and report cascade), their answers on other
// questions, and the reports they filed. Runs as one transaction.
func (s *ModerationService) DeleteUser(userID uuid.UUID) (*dto.DeleteUserResult, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &dto.DeleteUserResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uuid.UUID
		if err := tx.Model(&models.Question{}).Where("user_id = ?", userID).Pluck("id", &questionIDs).Error; err != nil {
			return &CascadeError{Step: "collect questions", Err: err}
		}
		for _, qid := range questionIDs {
			if err := s.deleteQuestionCascade(tx, qid, uuid.Nil); err != nil {
				return err
			}
		}
		result.DeletedQuestions = int64(len(questionIDs))

		// Answers the user left on other people's questions.
		var answerIDs []uuid.UUID
		if err := tx.Model(&models.Answer{}).Where("user_id = ?", userID).Pluck("id", &answerIDs).Error; err != nil {
			return &CascadeError{Step: "collect answers", Err: err}
		}
		for _, aid := range answerIDs {
			if err := s.deleteAnswerCascade(tx, aid, uuid.Nil); err != nil {
				return err
			}
		}
		result.DeletedAnswers = int64(len(answerIDs))

		authored := tx.Where("reported_by = ?", userID).Delete(&models.Report{})
		if authored.Error != nil {
			return &CascadeError{Step: "delete authored reports", Err: authored.Error}
		}
		result.DeletedReports = authored.RowsAffected

		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return &CascadeError{Step: "delete refresh tokens", Err: err}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return &CascadeError{Step: "delete user", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateUserRole changes a user's role.
func (s *ModerationService) UpdateUserRole(userID uuid.UUID, role string) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return nil, errors.New("invalid role")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// DashboardStats returns the headline counters for the moderation panel.
func (s *ModerationService) DashboardStats() (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Question{}).Count(&stats.TotalQuestions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Answer{}).Count(&stats.TotalAnswers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Report{}).Where("status = ?", models.ReportPending).Count(&stats.PendingReports).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
