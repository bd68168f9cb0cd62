package postgres

import (
	"context"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *participantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) FirstOrCreate(ctx context.Context, participant *domain.Participant) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", participant.UserID, participant.SessionID).
		Attrs(domain.Participant{Role: participant.Role}).
		FirstOrCreate(participant)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *participantRepository) Get(ctx context.Context, sessionID uuid.UUID, userID uint) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&participant, "session_id = ? AND user_id = ?", sessionID, userID).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) GetModerator(ctx context.Context, sessionID uuid.UUID, userID uint) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.db.WithContext(ctx).
		First(&participant, "session_id = ? AND user_id = ? AND role = ?",
			sessionID, userID, domain.RoleModerator).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}
