package postgres

import (
	"context"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) *storyRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	return r.db.WithContext(ctx).Create(story).Error
}

func (r *storyRepository) GetByID(ctx context.Context, id uint) (*domain.Story, error) {
	var story domain.Story
	err := r.db.WithContext(ctx).First(&story, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) Update(ctx context.Context, story *domain.Story) error {
	return r.db.WithContext(ctx).Save(story).Error
}

func (r *storyRepository) DeleteScoped(ctx context.Context, sessionID uuid.UUID, storyID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.Story{}, "session_id = ? AND id = ?", sessionID, storyID)
	return res.RowsAffected, res.Error
}

func (r *storyRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Story, error) {
	var stories []*domain.Story
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("updated_at DESC").
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

type storyPointRepository struct {
	db *gorm.DB
}

func NewStoryPointRepository(db *gorm.DB) *storyPointRepository {
	return &storyPointRepository{db: db}
}

func (r *storyPointRepository) Upsert(ctx context.Context, point *domain.StoryPoint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "story_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"points", "updated_at"}),
		}).
		Create(point).Error
}

func (r *storyPointRepository) GetByStory(ctx context.Context, sessionID uuid.UUID, storyID uint) ([]*domain.StoryPoint, error) {
	var points []*domain.StoryPoint
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND story_id = ?", sessionID, storyID).
		Order("updated_at DESC").
		Find(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
