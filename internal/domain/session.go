package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed"
)

type Session struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Name        string         `json:"name" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Status      SessionStatus  `json:"status" gorm:"not null;default:'active'"`
	CardDeck    datatypes.JSON `json:"cardDeck"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// Relations
	Participants []Participant `json:"participants,omitempty" gorm:"foreignKey:SessionID"`
	Stories      []Story       `json:"stories,omitempty" gorm:"foreignKey:SessionID"`
}

func (Session) TableName() string {
	return "sessions"
}

// SessionSummary is a paged row for a user's session listing. ParticipantCount
// is computed by the repository, not stored.
type SessionSummary struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Status           SessionStatus `json:"status"`
	ParticipantCount int64         `json:"participantCount"`
}
