package dto

import (
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ContentID   uuid.UUID `json:"content_id"`
	ContentType string    `json:"content_type"`
	Reason      string    `json:"reason"`
	Details     string    `json:"details,omitempty"`
	Severity    string    `json:"severity,omitempty"`
}

type ResolveReportRequest struct {
	Action string `json:"action"`
	Note   string `json:"note"`
}

type HandleQuestionRequest struct {
	Action    string `json:"action"`
	AdminNote string `json:"admin_note"`
}

type ModerateQuestionRequest struct {
	Status         string `json:"status"`
	ModerationNote string `json:"moderation_note"`
}

type ModeratorReportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type DeleteUserResult struct {
	DeletedQuestions int64 `json:"deleted_questions"`
	DeletedAnswers   int64 `json:"deleted_answers"`
	DeletedReports   int64 `json:"deleted_reports"`
}

type DashboardStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalQuestions int64 `json:"total_questions"`
	TotalAnswers   int64 `json:"total_answers"`
	PendingReports int64 `json:"pending_reports"`
}

type VoteRequest struct {
	Vote string `json:"vote"` // "up" or "down"
}

// VoteResult is the reconciled ledger state after a cast.
type VoteResult struct {
	Votes  int             `json:"votes"`
	Voters models.VoterSet `json:"voters"`
}
