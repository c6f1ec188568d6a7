package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event *db_models.Event) error
	FindEventById(ctx context.Context, id string) (*db_models.Event, error)
	UpdateEvent(ctx context.Context, event *db_models.Event, participants []db_models.User) error
	DeleteEvent(ctx context.Context, id string) error
	ListEventsByCompany(ctx context.Context, companyID uuid.UUID) ([]db_models.Event, error)
	ListActiveEventsForUser(ctx context.Context, companyID, userID uuid.UUID, now int64) ([]db_models.Event, error)
	IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *db_models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindEventById(ctx context.Context, id string) (*db_models.Event, error) {
	var event db_models.Event
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Participants").
		First(&event, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &event, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, event *db_models.Event, participants []db_models.User) error {
	err := r.db.WithContext(ctx).
		Model(event).
		Select("Title", "StartsAt", "EndsAt").
		Updates(event).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(event).
		Association("Participants").
		Replace(participants)
}

func (r *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&db_models.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) ListEventsByCompany(ctx context.Context, companyID uuid.UUID) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("company_id = ?", companyID).
		Order("starts_at DESC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) ListActiveEventsForUser(ctx context.Context, companyID, userID uuid.UUID, now int64) ([]db_models.Event, error) {
	var events []db_models.Event
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Joins("JOIN event_participants ep ON ep.event_id = events.id").
		Where("events.company_id = ? AND ep.user_id = ?", companyID, userID).
		Where("events.starts_at <= ? AND (events.ends_at IS NULL OR events.ends_at >= ?)", now, now).
		Order("events.starts_at DESC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("event_participants").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&n).Error
	return n > 0, err
}
