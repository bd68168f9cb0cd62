package postgres

import (
	"context"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).
		First(&session, "id = ? AND status = ?", id, domain.SessionStatusActive).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]domain.SessionSummary, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.Participant{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []domain.SessionSummary
	err = r.db.WithContext(ctx).
		Model(&domain.Session{}).
		Select("sessions.id, sessions.name, sessions.description, sessions.status, COUNT(members.user_id) AS participant_count").
		Joins("JOIN participants ON participants.session_id = sessions.id AND participants.user_id = ?", userID).
		Joins("JOIN participants AS members ON members.session_id = sessions.id").
		Group("sessions.id").
		Order("sessions.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
