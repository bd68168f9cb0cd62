package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
	"github.com/Aayush1011/poker-planning-backend/internal/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotModerator     = domain.NewError(http.StatusForbidden, "Forbidden")
	ErrStoryNotFound    = domain.NewError(http.StatusNotFound, "Not Found")
	ErrStoryDeleteEmpty = domain.NewError(http.StatusBadRequest, "Bad Request")
)

// Broadcaster is the room fan-out the service notifies after each
// successful write. Broadcasts are best-effort; the store commit that
// precedes them is authoritative.
type Broadcaster interface {
	EmitToRoom(sessionID string, event string, payload interface{})
}

type StoryService struct {
	storyRepo       repository.StoryRepository
	participantRepo repository.ParticipantRepository
	broadcaster     Broadcaster
}

func NewStoryService(storyRepo repository.StoryRepository, participantRepo repository.ParticipantRepository, broadcaster Broadcaster) *StoryService {
	return &StoryService{
		storyRepo:       storyRepo,
		participantRepo: participantRepo,
		broadcaster:     broadcaster,
	}
}

// AddStory requires the creator to already be a moderator participant of
// the session.
func (s *StoryService) AddStory(ctx context.Context, sessionID uuid.UUID, creatorID uint, name, description string) (*domain.Story, error) {
	if _, err := s.participantRepo.GetModerator(ctx, sessionID, creatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotModerator
		}
		return nil, err
	}

	story := &domain.Story{
		SessionID:   sessionID,
		UserID:      creatorID,
		Name:        name,
		Description: description,
		Status:      domain.StoryStatusPending,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	s.broadcaster.EmitToRoom(sessionID.String(), string(websocket.EventStory), websocket.StoryEventPayload{
		Action:      websocket.ActionAdd,
		ID:          story.ID,
		Name:        name,
		Description: description,
	})
	return story, nil
}

func (s *StoryService) EditStory(ctx context.Context, sessionID uuid.UUID, storyID uint, name, description string) (*domain.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}

	story.Name = name
	story.Description = description
	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.broadcaster.EmitToRoom(sessionID.String(), string(websocket.EventStory), websocket.StoryEventPayload{
		Action:      websocket.ActionEdit,
		ID:          story.ID,
		Name:        name,
		Description: description,
	})
	return story, nil
}

// DeleteStory is scoped to both ids so a storyId guessed from another
// session never matches.
func (s *StoryService) DeleteStory(ctx context.Context, sessionID uuid.UUID, storyID uint) error {
	deleted, err := s.storyRepo.DeleteScoped(ctx, sessionID, storyID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrStoryDeleteEmpty
	}

	s.broadcaster.EmitToRoom(sessionID.String(), string(websocket.EventStory), websocket.StoryEventPayload{
		Action: websocket.ActionDelete,
		ID:     storyID,
	})
	return nil
}

func (s *StoryService) ListStories(ctx context.Context, sessionID uuid.UUID) ([]*domain.Story, error) {
	return s.storyRepo.ListBySession(ctx, sessionID)
}
