package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
)

// ParseRole validates a role string at the edge so free-form values never
// reach the participants table.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleModerator:
		return RoleModerator, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", ErrInvalidRole
	}
}

// Participant is a user's membership in one session. The composite primary
// key makes repeated joins an idempotent lookup rather than a duplicate row.
type Participant struct {
	UserID    uint      `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	SessionID uuid.UUID `json:"sessionId" gorm:"type:uuid;primaryKey"`
	Role      Role      `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Participant) TableName() string {
	return "participants"
}
