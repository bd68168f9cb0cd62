package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = domain.NewError(http.StatusNotFound, "Session not found")

// defaultCardDeck is the estimation deck a new session starts with.
var defaultCardDeck = []byte(`["0","1","2","3","5","8","13","21","?"]`)

type SessionService struct {
	sessionRepo     repository.SessionRepository
	participantRepo repository.ParticipantRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, participantRepo repository.ParticipantRepository) *SessionService {
	return &SessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, name, description string) (*domain.Session, error) {
	session := &domain.Session{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Status:      domain.SessionStatusActive,
		CardDeck:    defaultCardDeck,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveSession treats closed sessions as absent.
func (s *SessionService) GetActiveSession(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionRepo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// JoinSession is an idempotent upsert keyed by (userId, sessionId). The
// returned flag distinguishes a fresh join from an existing membership;
// on a repeated join the participant keeps its original role.
func (s *SessionService) JoinSession(ctx context.Context, sessionID uuid.UUID, userID uint, role domain.Role) (*domain.Participant, bool, error) {
	participant := &domain.Participant{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
	}
	created, err := s.participantRepo.FirstOrCreate(ctx, participant)
	if err != nil {
		return nil, false, err
	}
	return participant, created, nil
}

// GetUserSessions pages over the sessions a user participates in.
// fetchOffset counts pages, not rows.
func (s *SessionService) GetUserSessions(ctx context.Context, userID uint, fetchLimit, fetchOffset int) ([]domain.SessionSummary, int64, error) {
	offset := 0
	if fetchOffset > 0 {
		offset = fetchLimit * fetchOffset
	}
	return s.sessionRepo.GetByUserID(ctx, userID, fetchLimit, offset)
}
