package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User roles, in ascending privilege order.
const (
	RoleUser       = "user"
	RoleModerator  = "moderator"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"
)

// User account statuses.
const (
	UserActive    = "active"
	UserSuspended = "suspended"
	UserBanned    = "banned"
)

// ModerationEntry is one action in a user's moderation history.
type ModerationEntry struct {
	Action      string    `json:"action"` // warning, suspension, ban
	Reason      string    `json:"reason"`
	ModeratedBy string    `json:"moderated_by"`
	Date        time.Time `json:"date"`
}

// User is hard-deleted; all owned content cascades with it.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null;size:100" json:"name"`
	Email    string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'user'" json:"role"`
	Status   string    `gorm:"size:20;not null;default:'active'" json:"status"`

	Reputation int        `gorm:"not null;default:0" json:"reputation"`
	LastLogin  *time.Time `json:"last_login,omitempty"`

	ModerationHistory datatypes.JSONSlice[ModerationEntry] `json:"moderation_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsModerator reports whether the user may perform moderation actions.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// IsAdmin reports whether the user has admin-level privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
