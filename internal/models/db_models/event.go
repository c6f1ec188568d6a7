package db_models

import "github.com/google/uuid"

type Event struct {
	BaseModel
	Title     string    `gorm:"type:varchar(255);not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt  int64     `gorm:"not null"`
	EndsAt    *int64

	Company      Company `gorm:"constraint:OnDelete:CASCADE"`
	Participants []User  `gorm:"many2many:event_participants"`
}
