package services

import (
	"errors"
	"strings"

	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService records user reports against content. Submission never
// deduplicates: independent reports on the same item are each tracked.
type ReportService struct {
	db      *gorm.DB
	content *ContentService
}

func NewReportService(db *gorm.DB, content *ContentService) *ReportService {
	return &ReportService{db: db, content: content}
}

// Submit creates a new pending report against the referenced content.
func (s *ReportService) Submit(reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	contentType := models.ContentType(req.ContentType)
	if !contentType.Valid() {
		return nil, ErrInvalidContentType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, errors.New("reason is required")
	}

	severity := req.Severity
	switch severity {
	case models.SeverityLow, models.SeverityMedium, models.SeverityHigh:
	default:
		severity = models.SeverityMedium
	}

	report := models.Report{
		ID:          uuid.New(),
		ContentID:   req.ContentID,
		ContentType: contentType,
		Reason:      req.Reason,
		Details:     req.Details,
		Severity:    severity,
		ReportedBy:  reporterID,
		Status:      models.ReportPending,
		ActionTaken: models.TakenNone,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// SubmitByModerator escalates a question to admins: the question moves to
// under review and a high-severity pending report is filed.
func (s *ReportService) SubmitByModerator(questionID, moderatorID uuid.UUID, reason, details string) (*models.Report, error) {
	unlock := s.content.locks.lock(models.ContentQuestion, questionID)
	defer unlock()

	report := models.Report{
		ID:          uuid.New(),
		ContentID:   questionID,
		ContentType: models.ContentQuestion,
		Reason:      reason,
		Details:     details,
		Severity:    models.SeverityHigh,
		ReportedBy:  moderatorID,
		Status:      models.ReportPending,
		ActionTaken: models.TakenNone,
	}

	// One transaction: a failed report insert must roll back the
	// under-review transition, never stranding the question.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, "id = ?", questionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if err := s.content.applyQuestionStatus(tx, &question, moderatorID, models.StatusUnderReview, details); err != nil {
			return err
		}
		return tx.Create(&report).Error
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Get returns a single report by id.
func (s *ReportService) Get(reportID uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List returns reports filtered by optional status and content type,
// newest first.
func (s *ReportService) List(status models.ReportStatus, contentType models.ContentType, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if contentType != "" {
		query = query.Where("content_type = ?", contentType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// HistoryFor returns every report ever filed against a content item,
// newest first. Reviewed and dismissed reports are included.
func (s *ReportService) HistoryFor(contentID uuid.UUID, contentType models.ContentType) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.
		Where("content_id = ? AND content_type = ?", contentID, contentType).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
