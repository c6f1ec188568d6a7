package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type RequestRepository interface {
	ListTypes(ctx context.Context) ([]db_models.RequestType, error)
	FindTypeById(ctx context.Context, id string) (*db_models.RequestType, error)

	CreateWithMessage(ctx context.Context, request *db_models.Request, message *db_models.RequestMessage) error
	FindById(ctx context.Context, id string) (*db_models.Request, error)
	FindDetailById(ctx context.Context, id string) (*db_models.Request, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]db_models.Request, error)
	ListForHR(ctx context.Context, hrID uuid.UUID) ([]db_models.Request, error)
	MessageAggregates(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]MessageAggregate, error)

	AddMessage(ctx context.Context, message *db_models.RequestMessage) error
	UpdateStatus(ctx context.Context, id string, status db_models.RequestStatus, closedAt *int64) error
}

// MessageAggregate carries per-request message annotations for list views.
type MessageAggregate struct {
	MessagesCount int64
	LastMessageAt *int64
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{
		db: db,
	}
}

func (r *requestRepository) ListTypes(ctx context.Context) ([]db_models.RequestType, error) {
	var types []db_models.RequestType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *requestRepository) FindTypeById(ctx context.Context, id string) (*db_models.RequestType, error) {
	var requestType db_models.RequestType
	err := r.db.WithContext(ctx).First(&requestType, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &requestType, nil
}

// CreateWithMessage inserts the request and its initial message atomically.
func (r *requestRepository) CreateWithMessage(ctx context.Context, request *db_models.Request, message *db_models.RequestMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(request).Error; err != nil {
			return err
		}
		message.RequestID = request.ID
		return tx.Create(message).Error
	})
}

func (r *requestRepository) FindById(ctx context.Context, id string) (*db_models.Request, error) {
	var request db_models.Request
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) FindDetailById(ctx context.Context, id string) (*db_models.Request, error) {
	var request db_models.Request
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("Employee").
		Preload("HR").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("request_messages.created_at ASC")
		}).
		Preload("Messages.Sender").
		First(&request, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]db_models.Request, error) {
	var requests []db_models.Request
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("HR").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) ListForHR(ctx context.Context, hrID uuid.UUID) ([]db_models.Request, error) {
	var requests []db_models.Request
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("Employee").
		Where("hr_id = ?", hrID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepository) MessageAggregates(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]MessageAggregate, error) {
	if len(requestIDs) == 0 {
		return map[uuid.UUID]MessageAggregate{}, nil
	}

	type row struct {
		RequestID     uuid.UUID `gorm:"column:request_id"`
		MessagesCount int64     `gorm:"column:messages_count"`
		LastMessageAt *int64    `gorm:"column:last_message_at"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&db_models.RequestMessage{}).
		Select("request_id, COUNT(*) AS messages_count, MAX(created_at) AS last_message_at").
		Where("request_id IN ?", requestIDs).
		Group("request_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]MessageAggregate, len(rows))
	for _, r := range rows {
		out[r.RequestID] = MessageAggregate{
			MessagesCount: r.MessagesCount,
			LastMessageAt: r.LastMessageAt,
		}
	}
	return out, nil
}

func (r *requestRepository) AddMessage(ctx context.Context, message *db_models.RequestMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status db_models.RequestStatus, closedAt *int64) error {
	updates := map[string]interface{}{"status": status}
	if closedAt != nil {
		updates["closed_at"] = *closedAt
	}
	return r.db.WithContext(ctx).
		Model(&db_models.Request{}).
		Where("id = ?", id).
		Updates(updates).Error
}
