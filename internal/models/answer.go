package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"-"`
	Content    string    `gorm:"type:text;not null" json:"content"`

	Status Status `gorm:"size:20;not null;default:'active';index" json:"status"`

	Votes  int                          `gorm:"not null;default:0" json:"votes"`
	Voters datatypes.JSONType[VoterSet] `json:"voters"`

	IsAccepted bool `gorm:"not null;default:false" json:"is_accepted"`

	Moderation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Answer) TableName() string {
	return "answers"
}

// VoterValues returns the current voter set, never nil.
func (a *Answer) VoterValues() VoterSet {
	set := a.Voters.Data()
	if set == nil {
		set = VoterSet{}
	}
	return set
}

// SetVoters replaces the voter set and recomputes the aggregate from it.
func (a *Answer) SetVoters(set VoterSet) {
	a.Voters = datatypes.NewJSONType(set)
	a.Votes = set.Sum()
}
