package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType tags the two moderatable content variants.
type ContentType string

const (
	ContentQuestion ContentType = "question"
	ContentAnswer   ContentType = "answer"
)

func (t ContentType) Valid() bool {
	return t == ContentQuestion || t == ContentAnswer
}

// Status is the lifecycle state of a content item. Questions and answers
// share the type but allow different state sets.
type Status string

const (
	StatusOpen        Status = "open"
	StatusUnderReview Status = "under review"
	StatusResolved    Status = "resolved"
	StatusRemoved     Status = "removed"
	StatusRejected    Status = "rejected"

	StatusActive  Status = "active"
	StatusFlagged Status = "flagged"
)

var questionTransitions = map[Status][]Status{
	StatusOpen:        {StatusUnderReview, StatusResolved, StatusRemoved},
	StatusUnderReview: {StatusOpen, StatusRejected, StatusRemoved, StatusResolved},
	StatusResolved:    {StatusRemoved},
	StatusRejected:    {StatusRemoved},
	StatusRemoved:     {},
}

var answerTransitions = map[Status][]Status{
	StatusActive:  {StatusFlagged, StatusRemoved},
	StatusFlagged: {StatusActive, StatusRemoved},
	StatusRemoved: {},
}

// InitialStatus returns the state a freshly created item starts in.
func (t ContentType) InitialStatus() Status {
	if t == ContentAnswer {
		return StatusActive
	}
	return StatusOpen
}

// CanTransition reports whether moving from one status to another is a
// permitted edge for this content type.
func (t ContentType) CanTransition(from, to Status) bool {
	table := questionTransitions
	if t == ContentAnswer {
		table = answerTransitions
	}
	allowed, ok := table[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether the status belongs to this content type's
// state set at all.
func (t ContentType) ValidStatus(s Status) bool {
	table := questionTransitions
	if t == ContentAnswer {
		table = answerTransitions
	}
	_, ok := table[s]
	return ok
}

// Moderation is the audit metadata stamped on content and reports whenever
// a moderator or admin acts on them. Notes accumulate; each decision appends
// to the existing note so the comment history is preserved.
type Moderation struct {
	ModeratorNote string     `gorm:"type:text" json:"moderator_note,omitempty"`
	ModeratedBy   *uuid.UUID `gorm:"type:uuid" json:"moderated_by,omitempty"`
	ModeratedAt   *time.Time `json:"moderated_at,omitempty"`
}

// Stamp records a moderation decision, appending the note instead of
// overwriting prior ones.
func (m *Moderation) Stamp(moderatorID uuid.UUID, note string, at time.Time) {
	if note != "" {
		if m.ModeratorNote != "" {
			m.ModeratorNote += "\n" + note
		} else {
			m.ModeratorNote = note
		}
	}
	m.ModeratedBy = &moderatorID
	m.ModeratedAt = &at
}
