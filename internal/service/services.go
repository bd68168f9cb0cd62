package service

import (
	"github.com/Aayush1011/poker-planning-backend/internal/config"
	"github.com/Aayush1011/poker-planning-backend/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Session *SessionService
	Story   *StoryService
}

func NewServices(repos *repository.Repositories, broadcaster Broadcaster, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, cfg),
		Session: NewSessionService(repos.Session, repos.Participant),
		Story:   NewStoryService(repos.Story, repos.Participant, broadcaster),
	}
}
