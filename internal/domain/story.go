package domain

import (
	"time"

	"github.com/google/uuid"
)

type StoryStatus string

const (
	StoryStatusPending StoryStatus = "pending"
	StoryStatusActive  StoryStatus = "active"
	StoryStatusClosed  StoryStatus = "closed"
)

type Story struct {
	ID          uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID   uuid.UUID   `json:"sessionId" gorm:"type:uuid;not null;index"`
	UserID      uint        `json:"userId" gorm:"not null"`
	Name        string      `json:"name" gorm:"size:100;not null"`
	Description string      `json:"description" gorm:"type:text;not null"`
	Status      StoryStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (Story) TableName() string {
	return "stories"
}

// StoryPoint is one participant's estimate for one story.
type StoryPoint struct {
	SessionID uuid.UUID `json:"sessionId" gorm:"type:uuid;primaryKey"`
	StoryID   uint      `json:"storyId" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	Points    int       `json:"points" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (StoryPoint) TableName() string {
	return "story_points"
}
