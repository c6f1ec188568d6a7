package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type FeedbackRepositoryInterface interface {
	CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error
	ExistsForUserEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
	ListFeedbackForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error)
}

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) ExistsForUserEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Feedback{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&n).Error
	return n > 0, err
}

func (r *FeedbackRepository) ListFeedbackForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error) {
	var feedbacks []db_models.Feedback
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Order("created_at DESC").
		Find(&feedbacks).Error
	return feedbacks, err
}
