package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Priority of a question, set by the author.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Question struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"not null;size:100;index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	GPSLocation string    `gorm:"size:255" json:"gps_location,omitempty"`
	Attempts    string    `gorm:"type:text" json:"attempts,omitempty"`
	Priority    string    `gorm:"size:10;default:'medium'" json:"priority"`

	Status Status `gorm:"size:20;not null;default:'open';index" json:"status"`

	Votes  int                          `gorm:"not null;default:0" json:"votes"`
	Voters datatypes.JSONType[VoterSet] `json:"voters"`

	AnswersCount   int       `gorm:"not null;default:0" json:"answers_count"`
	Views          int       `gorm:"not null;default:0" json:"views"`
	LastActivityAt time.Time `json:"last_activity_at"`

	Moderation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// VoterValues returns the current voter set, never nil.
func (q *Question) VoterValues() VoterSet {
	set := q.Voters.Data()
	if set == nil {
		set = VoterSet{}
	}
	return set
}

// SetVoters replaces the voter set and recomputes the aggregate from it.
func (q *Question) SetVoters(set VoterSet) {
	q.Voters = datatypes.NewJSONType(set)
	q.Votes = set.Sum()
}
