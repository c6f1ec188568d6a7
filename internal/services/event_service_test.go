package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pulse/internal/models/db_models"
	"pulse/internal/models/request_models"
	"pulse/pkg/utils"
)

func TestCreateEventRejectsForeignParticipants(t *testing.T) {
	eventRepo := &mockEventRepo{}
	userRepo := &mockUserRepo{}
	feedbackRepo := &mockFeedbackRepo{}

	hr := testUser(db_models.RoleHR)
	outsider := testUser(db_models.RoleEmployee) // different company

	userRepo.On("FindById", mock.Anything, hr.ID.String()).Return(hr, nil)
	userRepo.On("FindManyByIds", mock.Anything, []uuid.UUID{outsider.ID}).Return([]db_models.User{*outsider}, nil)

	svc := NewEventService(eventRepo, userRepo, feedbackRepo)
	_, err := svc.CreateEvent(context.Background(), hr.ID.String(), request_models.EventUpsertRequest{
		Title:          "Town hall",
		StartsAt:       1_760_000_000,
		ParticipantIDs: []string{outsider.ID.String()},
	})

	assert.ErrorIs(t, err, utils.ErrValidation)
	eventRepo.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestCreateEventRejectsHRParticipants(t *testing.T) {
	eventRepo := &mockEventRepo{}
	userRepo := &mockUserRepo{}
	feedbackRepo := &mockFeedbackRepo{}

	hr := testUser(db_models.RoleHR)
	colleague := testUser(db_models.RoleHR)
	colleague.CompanyID = hr.CompanyID

	userRepo.On("FindById", mock.Anything, hr.ID.String()).Return(hr, nil)
	userRepo.On("FindManyByIds", mock.Anything, []uuid.UUID{colleague.ID}).Return([]db_models.User{*colleague}, nil)

	svc := NewEventService(eventRepo, userRepo, feedbackRepo)
	_, err := svc.CreateEvent(context.Background(), hr.ID.String(), request_models.EventUpsertRequest{
		Title:          "Town hall",
		StartsAt:       1_760_000_000,
		ParticipantIDs: []string{colleague.ID.String()},
	})

	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestGetEventHidesOtherCompanies(t *testing.T) {
	eventRepo := &mockEventRepo{}
	userRepo := &mockUserRepo{}
	feedbackRepo := &mockFeedbackRepo{}

	hr := testUser(db_models.RoleHR)
	foreign := &db_models.Event{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		Title:     "Someone else's offsite",
		CompanyID: uuid.New(),
	}

	userRepo.On("FindById", mock.Anything, hr.ID.String()).Return(hr, nil)
	eventRepo.On("FindEventById", mock.Anything, foreign.ID.String()).Return(foreign, nil)

	svc := NewEventService(eventRepo, userRepo, feedbackRepo)
	_, err := svc.GetEvent(context.Background(), hr.ID.String(), foreign.ID.String())
	assert.ErrorIs(t, err, utils.ErrEventNotFound)
}

func TestListActiveEventsFlagsFeedback(t *testing.T) {
	eventRepo := &mockEventRepo{}
	userRepo := &mockUserRepo{}
	feedbackRepo := &mockFeedbackRepo{}

	employee := testUser(db_models.RoleEmployee)
	done := db_models.Event{BaseModel: db_models.BaseModel{ID: uuid.New()}, Title: "Standup", CompanyID: *employee.CompanyID}
	pending := db_models.Event{BaseModel: db_models.BaseModel{ID: uuid.New()}, Title: "Retro", CompanyID: *employee.CompanyID}

	userRepo.On("FindById", mock.Anything, employee.ID.String()).Return(employee, nil)
	eventRepo.On("ListActiveEventsForUser", mock.Anything, *employee.CompanyID, employee.ID, mock.Anything).
		Return([]db_models.Event{done, pending}, nil)
	feedbackRepo.On("ExistsForUserEvent", mock.Anything, employee.ID, done.ID).Return(true, nil)
	feedbackRepo.On("ExistsForUserEvent", mock.Anything, employee.ID, pending.ID).Return(false, nil)

	svc := NewEventService(eventRepo, userRepo, feedbackRepo)
	events, err := svc.ListActiveEventsForEmployee(context.Background(), employee.ID.String())
	require.NoError(t, err)

	require.Len(t, events, 2)
	require.NotNil(t, events[0].HasFeedback)
	assert.True(t, *events[0].HasFeedback)
	require.NotNil(t, events[1].HasFeedback)
	assert.False(t, *events[1].HasFeedback)
}

func TestDeleteEventChecksOwnershipFirst(t *testing.T) {
	eventRepo := &mockEventRepo{}
	userRepo := &mockUserRepo{}
	feedbackRepo := &mockFeedbackRepo{}

	hr := testUser(db_models.RoleHR)
	userRepo.On("FindById", mock.Anything, hr.ID.String()).Return(hr, nil)

	missing := uuid.New()
	eventRepo.On("FindEventById", mock.Anything, missing.String()).Return(nil, nil)

	svc := NewEventService(eventRepo, userRepo, feedbackRepo)
	err := svc.DeleteEvent(context.Background(), hr.ID.String(), missing.String())
	assert.ErrorIs(t, err, utils.ErrEventNotFound)
	eventRepo.AssertNotCalled(t, "DeleteEvent", mock.Anything, mock.Anything)
}
