package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulse/internal/models/db_models"
)

type CompanyRepository interface {
	FindCompanyById(ctx context.Context, id string) (*db_models.Company, error)
	FindDepartmentById(ctx context.Context, id string) (*db_models.Department, error)

	// Catalog listings back the public selection lists shown at registration.
	ListCompanies(ctx context.Context) ([]db_models.Company, error)
	ListDepartments(ctx context.Context, companyID string) ([]db_models.Department, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{
		db: db,
	}
}

func (r *companyRepository) FindCompanyById(ctx context.Context, id string) (*db_models.Company, error) {
	var company db_models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &company, nil
}

func (r *companyRepository) ListCompanies(ctx context.Context) ([]db_models.Company, error) {
	var companies []db_models.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

// ListDepartments returns every department, or only one company's when
// companyID is set.
func (r *companyRepository) ListDepartments(ctx context.Context, companyID string) ([]db_models.Department, error) {
	q := r.db.WithContext(ctx).Preload("Company")
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}

	var departments []db_models.Department
	err := q.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *companyRepository) FindDepartmentById(ctx context.Context, id string) (*db_models.Department, error) {
	var department db_models.Department
	err := r.db.WithContext(ctx).First(&department, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &department, nil
}
