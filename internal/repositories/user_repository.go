package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type UserRepository interface {
	InsertTx(user *db_models.User, ctx context.Context) error
	FindById(ctx context.Context, id string) (*db_models.User, error)
	FindByUsername(ctx context.Context, username string) (*db_models.User, error)
	ListByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role db_models.UserRole, activeOnly bool) ([]db_models.User, error)
	FindManyByIds(ctx context.Context, ids []uuid.UUID) ([]db_models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) InsertTx(user *db_models.User, ctx context.Context) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindById(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Department").
		First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role db_models.UserRole, activeOnly bool) ([]db_models.User, error) {
	q := r.db.WithContext(ctx).
		Preload("Department").
		Where("company_id = ? AND role = ?", companyID, role)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var users []db_models.User
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) FindManyByIds(ctx context.Context, ids []uuid.UUID) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}
