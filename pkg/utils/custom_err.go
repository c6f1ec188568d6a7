package utils

import "errors"

var (
	ErrValidation         = errors.New("invalid request")
	ErrInvalidImage       = errors.New("invalid or unreadable image")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRefresh     = errors.New("invalid refresh token")

	ErrNoReferencePhoto = errors.New("user has no registered photo")
	ErrFaceMismatch     = errors.New("face authorization failed")

	ErrUserNotFound        = errors.New("user not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestTypeNotFound = errors.New("request type not found")

	ErrNotParticipant = errors.New("user is not a participant of this event")
	ErrRequestClosed  = errors.New("request is closed")
	ErrEmptyMessage   = errors.New("message must contain text or a file")

	ErrDatabaseError = errors.New("database error")
)
