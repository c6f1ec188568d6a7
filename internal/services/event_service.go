package services

import (
	"context"

	"github.com/google/uuid"

	"pulse/internal/models/db_models"
	"pulse/internal/models/request_models"
	"pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/utils"
)

type EventServiceInterface interface {
	CreateEvent(ctx context.Context, hrUserID string, request request_models.EventUpsertRequest) (*response_models.EventResponse, error)
	GetEvent(ctx context.Context, hrUserID, eventID string) (*response_models.EventResponse, error)
	UpdateEvent(ctx context.Context, hrUserID, eventID string, request request_models.EventUpsertRequest) (*response_models.EventResponse, error)
	DeleteEvent(ctx context.Context, hrUserID, eventID string) error
	ListCompanyEvents(ctx context.Context, hrUserID string) ([]response_models.EventResponse, error)
	ListActiveEventsForEmployee(ctx context.Context, userID string) ([]response_models.EventResponse, error)
}

type EventService struct {
	eventRepo    repositories.EventRepository
	userRepo     repositories.UserRepository
	feedbackRepo repositories.FeedbackRepositoryInterface
}

func NewEventService(
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
) EventServiceInterface {
	return &EventService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, hrUserID string, request request_models.EventUpsertRequest) (*response_models.EventResponse, error) {
	_, companyID, err := s.requireCompany(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	participants, err := s.resolveParticipants(ctx, companyID, request.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	event := &db_models.Event{
		Title:        request.Title,
		CompanyID:    companyID,
		StartsAt:     request.StartsAt,
		EndsAt:       request.EndsAt,
		Participants: participants,
	}

	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.GetEvent(ctx, hrUserID, event.ID.String())
}

func (s *EventService) GetEvent(ctx context.Context, hrUserID, eventID string) (*response_models.EventResponse, error) {
	_, companyID, err := s.requireCompany(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	event, err := s.companyEvent(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}

	resp := mapEvent(event, nil)
	return &resp, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, hrUserID, eventID string, request request_models.EventUpsertRequest) (*response_models.EventResponse, error) {
	_, companyID, err := s.requireCompany(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	event, err := s.companyEvent(ctx, companyID, eventID)
	if err != nil {
		return nil, err
	}

	participants, err := s.resolveParticipants(ctx, companyID, request.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	event.Title = request.Title
	event.StartsAt = request.StartsAt
	event.EndsAt = request.EndsAt

	if err := s.eventRepo.UpdateEvent(ctx, event, participants); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.GetEvent(ctx, hrUserID, eventID)
}

func (s *EventService) DeleteEvent(ctx context.Context, hrUserID, eventID string) error {
	_, companyID, err := s.requireCompany(ctx, hrUserID)
	if err != nil {
		return err
	}

	if _, err := s.companyEvent(ctx, companyID, eventID); err != nil {
		return err
	}

	if err := s.eventRepo.DeleteEvent(ctx, eventID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *EventService) ListCompanyEvents(ctx context.Context, hrUserID string) ([]response_models.EventResponse, error) {
	_, companyID, err := s.requireCompany(ctx, hrUserID)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListEventsByCompany(ctx, companyID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, mapEvent(&events[i], nil))
	}
	return out, nil
}

func (s *EventService) ListActiveEventsForEmployee(ctx context.Context, userID string) ([]response_models.EventResponse, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if user.CompanyID == nil {
		return []response_models.EventResponse{}, nil
	}

	events, err := s.eventRepo.ListActiveEventsForUser(ctx, *user.CompanyID, user.ID, utils.NowUnixSeconds())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.EventResponse, 0, len(events))
	for i := range events {
		hasFeedback, err := s.feedbackRepo.ExistsForUserEvent(ctx, user.ID, events[i].ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		out = append(out, mapEvent(&events[i], &hasFeedback))
	}
	return out, nil
}

func (s *EventService) requireCompany(ctx context.Context, userID string) (*db_models.User, uuid.UUID, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, uuid.Nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, uuid.Nil, utils.ErrUserNotFound
	}
	if user.CompanyID == nil {
		return nil, uuid.Nil, utils.ErrValidation
	}
	return user, *user.CompanyID, nil
}

// companyEvent loads an event and hides it when it belongs to another
// company; cross-company access reads as not-found.
func (s *EventService) companyEvent(ctx context.Context, companyID uuid.UUID, eventID string) (*db_models.Event, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, utils.ErrEventNotFound
	}

	event, err := s.eventRepo.FindEventById(ctx, eventID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if event == nil || event.CompanyID != companyID {
		return nil, utils.ErrEventNotFound
	}
	return event, nil
}

// resolveParticipants checks that every referenced user exists, is an
// employee, and belongs to the event's company.
func (s *EventService) resolveParticipants(ctx context.Context, companyID uuid.UUID, rawIDs []string) ([]db_models.User, error) {
	if len(rawIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, utils.ErrValidation
		}
		ids = append(ids, id)
	}

	users, err := s.userRepo.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(users) != len(ids) {
		return nil, utils.ErrValidation
	}
	for _, u := range users {
		if u.Role != db_models.RoleEmployee || u.CompanyID == nil || *u.CompanyID != companyID {
			return nil, utils.ErrValidation
		}
	}
	return users, nil
}

func mapEvent(event *db_models.Event, hasFeedback *bool) response_models.EventResponse {
	resp := response_models.EventResponse{
		ID:                event.ID.String(),
		Title:             event.Title,
		StartsAt:          utils.FormatRFC3339(event.StartsAt),
		EndsAt:            utils.FormatRFC3339Ptr(event.EndsAt),
		CompanyID:         event.CompanyID.String(),
		CompanyName:       event.Company.Name,
		ParticipantsCount: len(event.Participants),
		HasFeedback:       hasFeedback,
	}
	return resp
}
