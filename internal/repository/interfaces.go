package repository

import (
	"context"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	// GetByUserID pages over sessions the user participates in, most recently
	// updated first, and also returns the total number of such sessions.
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.SessionSummary, int64, error)
}

type ParticipantRepository interface {
	// FirstOrCreate reports whether the row was newly inserted. On a repeated
	// join the existing participant (with its original role) is returned.
	FirstOrCreate(ctx context.Context, participant *domain.Participant) (bool, error)
	Get(ctx context.Context, sessionID uuid.UUID, userID uint) (*domain.Participant, error)
	GetModerator(ctx context.Context, sessionID uuid.UUID, userID uint) (*domain.Participant, error)
}

type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	GetByID(ctx context.Context, id uint) (*domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	// DeleteScoped deletes the story only when it belongs to the given
	// session, returning the number of rows removed.
	DeleteScoped(ctx context.Context, sessionID uuid.UUID, storyID uint) (int64, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Story, error)
}

type StoryPointRepository interface {
	Upsert(ctx context.Context, point *domain.StoryPoint) error
	GetByStory(ctx context.Context, sessionID uuid.UUID, storyID uint) ([]*domain.StoryPoint, error)
}

type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	Participant ParticipantRepository
	Story       StoryRepository
	StoryPoint  StoryPointRepository
}
