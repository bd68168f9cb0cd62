package testutil

import (
	"fmt"
	"testing"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	userName string
	email    string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		userName: fmt.Sprintf("user_%s", suffix),
		email:    fmt.Sprintf("user_%s@example.com", suffix),
		password: "testpass123",
	}
}

func (b *UserBuilder) WithUserName(name string) *UserBuilder {
	b.userName = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		UserName:       b.userName,
		Email:          b.email,
		HashedPassword: string(hashedPassword),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user, b.password
}

// SessionBuilder creates test sessions
type SessionBuilder struct {
	name        string
	description string
	status      domain.SessionStatus
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		name:        "sprint planning",
		description: "estimation session for the sprint backlog",
		status:      domain.SessionStatusActive,
	}
}

func (b *SessionBuilder) WithName(name string) *SessionBuilder {
	b.name = name
	return b
}

func (b *SessionBuilder) WithStatus(status domain.SessionStatus) *SessionBuilder {
	b.status = status
	return b
}

func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	session := &domain.Session{
		ID:          uuid.New(),
		Name:        b.name,
		Description: b.description,
		Status:      b.status,
		CardDeck:    []byte(`["1","2","3","5","8"]`),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

// AddParticipant joins a user to a session with the given role
func AddParticipant(t *testing.T, db *gorm.DB, sessionID uuid.UUID, userID uint, role domain.Role) *domain.Participant {
	t.Helper()

	participant := &domain.Participant{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
	}
	if err := db.Create(participant).Error; err != nil {
		t.Fatalf("failed to create participant: %v", err)
	}
	return participant
}

// AddStory creates a story in a session
func AddStory(t *testing.T, db *gorm.DB, sessionID uuid.UUID, userID uint, name string) *domain.Story {
	t.Helper()

	story := &domain.Story{
		SessionID:   sessionID,
		UserID:      userID,
		Name:        name,
		Description: "as a user I want " + name,
		Status:      domain.StoryStatusPending,
	}
	if err := db.Create(story).Error; err != nil {
		t.Fatalf("failed to create story: %v", err)
	}
	return story
}
