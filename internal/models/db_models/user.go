package db_models

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleHR       UserRole = "HR"
	RoleEmployee UserRole = "EMPLOYEE"
)

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null"`
	Name         string   `gorm:"type:varchar(255);default:''"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);default:'EMPLOYEE';index"`

	// Reference photo used for face login, relative to the photo store root.
	// Empty means the user never registered one.
	PhotoPath string `gorm:"type:varchar(512);default:''"`

	IsActive bool `gorm:"default:true"`

	CompanyID    *uuid.UUID `gorm:"type:uuid"`
	DepartmentID *uuid.UUID `gorm:"type:uuid"`

	Company    *Company    `gorm:"constraint:OnDelete:SET NULL"`
	Department *Department `gorm:"constraint:OnDelete:SET NULL"`
}
