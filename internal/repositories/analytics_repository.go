package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

// FeedbackFilters narrows analytics queries. HR aggregations set CompanyID
// from the requesting HR's own company; personal stats set UserID instead.
// Everything else is optional.
type FeedbackFilters struct {
	CompanyID      uuid.UUID
	UserID         *uuid.UUID
	Start          *time.Time
	End            *time.Time
	EventID        *uuid.UUID
	HasEvent       *bool
	DepartmentID   *uuid.UUID
	DepartmentName string
	Emotions       []string
}

type AnalyticsRepository interface {
	CountAndAverage(ctx context.Context, f FeedbackFilters) (int64, float64, error)
	EmotionCounts(ctx context.Context, f FeedbackFilters) ([]EmotionCountRow, error)
	TimelineCounts(ctx context.Context, f FeedbackFilters, interval string) ([]TimelineRow, error)
	UserTotals(ctx context.Context, f FeedbackFilters, limit int) ([]UserTotalRow, error)
	TopEmotionForUser(ctx context.Context, f FeedbackFilters, userID uuid.UUID) (string, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// ---------- Row helpers ----------
type EmotionCountRow struct {
	Emotion string `gorm:"column:emotion"`
	Count   int64  `gorm:"column:count"`
}

type TimelineRow struct {
	Bucket  time.Time `gorm:"column:bucket"`
	Emotion string    `gorm:"column:emotion"`
	Count   int64     `gorm:"column:count"`
}

type UserTotalRow struct {
	UserID   string  `gorm:"column:user_id"`
	Username string  `gorm:"column:username"`
	Name     string  `gorm:"column:name"`
	Total    int64   `gorm:"column:total"`
	AvgConf  float64 `gorm:"column:avg_conf"`
}

func (r *analyticsRepository) scoped(ctx context.Context, f FeedbackFilters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&db_models.Feedback{})

	if f.CompanyID != uuid.Nil {
		q = q.Where("feedbacks.company_id = ?", f.CompanyID)
	}
	if f.UserID != nil {
		q = q.Where("feedbacks.user_id = ?", *f.UserID)
	}
	if f.Start != nil {
		q = q.Where("feedbacks.created_at >= ?", f.Start.Unix())
	}
	if f.End != nil {
		q = q.Where("feedbacks.created_at <= ?", f.End.Unix())
	}
	if f.EventID != nil {
		q = q.Where("feedbacks.event_id = ?", *f.EventID)
	}
	if f.HasEvent != nil {
		if *f.HasEvent {
			q = q.Where("feedbacks.event_id IS NOT NULL")
		} else {
			q = q.Where("feedbacks.event_id IS NULL")
		}
	}
	if f.DepartmentID != nil {
		q = q.Where("feedbacks.department_id = ?", *f.DepartmentID)
	}
	if f.DepartmentName != "" {
		q = q.Where("feedbacks.department_name = ?", f.DepartmentName)
	}
	if len(f.Emotions) > 0 {
		q = q.Where("feedbacks.emotion = ANY(?)", pq.Array(f.Emotions))
	}
	return q
}

func (r *analyticsRepository) CountAndAverage(ctx context.Context, f FeedbackFilters) (int64, float64, error) {
	var row struct {
		Total   int64   `gorm:"column:total"`
		AvgConf float64 `gorm:"column:avg_conf"`
	}
	err := r.scoped(ctx, f).
		Select("COUNT(*) AS total, COALESCE(AVG(confidence), 0) AS avg_conf").
		Find(&row).Error
	return row.Total, row.AvgConf, err
}

func (r *analyticsRepository) EmotionCounts(ctx context.Context, f FeedbackFilters) ([]EmotionCountRow, error) {
	var rows []EmotionCountRow
	err := r.scoped(ctx, f).
		Select("emotion, COUNT(*) AS count").
		Group("emotion").
		Order("count DESC").
		Find(&rows).Error
	return rows, err
}

// TimelineCounts buckets rows by day or month. created_at holds unix seconds,
// so the bucket expression converts before truncating.
func (r *analyticsRepository) TimelineCounts(ctx context.Context, f FeedbackFilters, interval string) ([]TimelineRow, error) {
	var rows []TimelineRow
	err := r.scoped(ctx, f).
		Select("date_trunc(?, to_timestamp(feedbacks.created_at)) AS bucket, emotion, COUNT(*) AS count", interval).
		Group("bucket, emotion").
		Order("bucket ASC").
		Find(&rows).Error
	return rows, err
}

func (r *analyticsRepository) UserTotals(ctx context.Context, f FeedbackFilters, limit int) ([]UserTotalRow, error) {
	var rows []UserTotalRow
	err := r.scoped(ctx, f).
		Select(`
			feedbacks.user_id,
			u.username,
			u.name,
			COUNT(*) AS total,
			COALESCE(AVG(feedbacks.confidence), 0) AS avg_conf`).
		Joins("JOIN users u ON u.id = feedbacks.user_id").
		Group("feedbacks.user_id, u.username, u.name").
		Order("total DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *analyticsRepository) TopEmotionForUser(ctx context.Context, f FeedbackFilters, userID uuid.UUID) (string, error) {
	var row EmotionCountRow
	err := r.scoped(ctx, f).
		Select("emotion, COUNT(*) AS count").
		Where("feedbacks.user_id = ?", userID).
		Group("emotion").
		Order("count DESC").
		Limit(1).
		Find(&row).Error
	return row.Emotion, err
}
