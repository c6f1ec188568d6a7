package db_models

import "github.com/google/uuid"

type Company struct {
	BaseModel
	Name string `gorm:"type:varchar(255);not null"`
}

type Department struct {
	BaseModel
	Name      string    `gorm:"type:varchar(255);not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Company Company `gorm:"constraint:OnDelete:CASCADE"`
}
