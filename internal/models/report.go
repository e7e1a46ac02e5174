package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus is the lifecycle of a report record.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

// ReportAction is the decision a moderator or admin takes on a report.
type ReportAction string

const (
	ActionApprove ReportAction = "approve"
	ActionReject  ReportAction = "reject"
	ActionDelete  ReportAction = "delete"
	ActionWarn    ReportAction = "warn"
	ActionRemove  ReportAction = "remove"
)

func (a ReportAction) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionDelete, ActionWarn, ActionRemove:
		return true
	}
	return false
}

// Taken maps the decision to the action recorded on the report.
func (a ReportAction) Taken() ActionTaken {
	switch a {
	case ActionDelete, ActionRemove:
		return TakenContentRemoved
	case ActionWarn:
		return TakenWarning
	default:
		return TakenNone
	}
}

// ActionTaken is what actually happened as a result of a report review.
type ActionTaken string

const (
	TakenNone           ActionTaken = "none"
	TakenWarning        ActionTaken = "warning"
	TakenContentRemoved ActionTaken = "content_removed"
	TakenUserSuspended  ActionTaken = "user_suspended"
)

// Severity levels for a report.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Report is a user complaint against a content item. It references the
// content by id and type only; the content may be deleted independently.
type Report struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_reports_content" json:"content_id"`
	ContentType ContentType `gorm:"size:10;not null;index:idx_reports_content" json:"content_type"`
	Reason      string      `gorm:"not null;size:500" json:"reason"`
	Details     string      `gorm:"type:text" json:"details,omitempty"`
	Severity    string      `gorm:"size:10;default:'medium'" json:"severity"`

	ReportedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"reported_by"`
	Reporter   User      `gorm:"foreignKey:ReportedBy" json:"-"`

	Status      ReportStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ActionTaken ActionTaken  `gorm:"size:20;not null;default:'none'" json:"action_taken"`

	Moderation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
