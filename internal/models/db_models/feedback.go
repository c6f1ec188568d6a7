package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Feedback is one stored emotion-analysis result. Rows are created by the
// analysis flow only and never updated afterwards.
type Feedback struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Emotion    string   `gorm:"type:varchar(32);not null"`
	Confidence *float64 `gorm:"type:double precision"`

	Probs   datatypes.JSON
	Top3    datatypes.JSON
	FaceBox datatypes.JSON

	EventID *uuid.UUID `gorm:"type:uuid;index"`

	// Company/Department copied from the user at creation time so later
	// affiliation changes do not rewrite history.
	CompanyID      *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentName string     `gorm:"type:varchar(255);default:''"`

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
