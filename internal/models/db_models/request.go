package db_models

import "github.com/google/uuid"

type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "OPEN"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusClosed     RequestStatus = "CLOSED"
)

// RequestType is a global catalog entry, shared across companies.
type RequestType struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}

// Request is a ticket from one employee to one HR. Once CLOSED it accepts
// no further messages or status changes.
type Request struct {
	BaseModel
	TypeID     uuid.UUID     `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID     `gorm:"type:uuid;not null;index:idx_requests_employee_status"`
	HRID       uuid.UUID     `gorm:"type:uuid;not null;index:idx_requests_hr_status"`
	Status     RequestStatus `gorm:"type:varchar(20);default:'OPEN';index:idx_requests_employee_status;index:idx_requests_hr_status"`
	ClosedAt   *int64

	Type     RequestType      `gorm:"constraint:OnDelete:RESTRICT"`
	Employee User             `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	HR       User             `gorm:"foreignKey:HRID;constraint:OnDelete:CASCADE"`
	Messages []RequestMessage `gorm:"constraint:OnDelete:CASCADE"`
}

// RequestMessage carries text, a file attachment, or both. The service layer
// rejects messages with neither.
type RequestMessage struct {
	BaseModel
	RequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"type:text"`
	FilePath  string    `gorm:"type:varchar(512);default:''"`

	Sender User `gorm:"foreignKey:SenderID"`
}
