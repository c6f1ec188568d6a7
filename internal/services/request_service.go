package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"pulse/internal/infra"
	"pulse/internal/models/db_models"
	"pulse/internal/models/request_models"
	"pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/utils"
)

type RequestServiceInterface interface {
	ListHRs(ctx context.Context, employeeID string) ([]response_models.EmployeeResponse, error)
	ListTypes(ctx context.Context) ([]response_models.RequestTypeResponse, error)
	Create(ctx context.Context, employeeID string, request request_models.CreateRequestRequest) (*response_models.RequestDetail, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]response_models.RequestListItem, error)
	ListForHR(ctx context.Context, hrID string) ([]response_models.RequestListItem, error)
	Detail(ctx context.Context, callerID, requestID string) (*response_models.RequestDetail, error)
	SendMessage(ctx context.Context, senderID, requestID, text string, attachment []byte, attachmentExt string) (*response_models.RequestDetail, error)
	UpdateStatus(ctx context.Context, hrID, requestID, status string) (*response_models.RequestDetail, error)
	Close(ctx context.Context, hrID, requestID string) (*response_models.RequestDetail, error)
}

type RequestService struct {
	requestRepo repositories.RequestRepository
	userRepo    repositories.UserRepository
	fileStore   *infra.FileStore
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	fileStore *infra.FileStore,
) RequestServiceInterface {
	return &RequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		fileStore:   fileStore,
	}
}

func (s *RequestService) ListHRs(ctx context.Context, employeeID string) ([]response_models.EmployeeResponse, error) {
	employee, err := s.userRepo.FindById(ctx, employeeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if employee == nil {
		return nil, utils.ErrUserNotFound
	}
	if employee.CompanyID == nil {
		return []response_models.EmployeeResponse{}, nil
	}

	hrs, err := s.userRepo.ListByCompanyAndRole(ctx, *employee.CompanyID, db_models.RoleHR, true)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.EmployeeResponse, 0, len(hrs))
	for i := range hrs {
		u := &hrs[i]
		resp := response_models.EmployeeResponse{
			ID:       u.ID.String(),
			Username: u.Username,
			Name:     u.Name,
		}
		if u.Department != nil {
			resp.DepartmentName = &u.Department.Name
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *RequestService) ListTypes(ctx context.Context) ([]response_models.RequestTypeResponse, error) {
	types, err := s.requestRepo.ListTypes(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RequestTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, response_models.RequestTypeResponse{
			ID:          t.ID.String(),
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return out, nil
}

func (s *RequestService) Create(ctx context.Context, employeeID string, request request_models.CreateRequestRequest) (*response_models.RequestDetail, error) {
	employee, err := s.userRepo.FindById(ctx, employeeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if employee == nil {
		return nil, utils.ErrUserNotFound
	}

	requestType, err := s.requestRepo.FindTypeById(ctx, request.TypeID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if requestType == nil {
		return nil, utils.ErrRequestTypeNotFound
	}

	hr, err := s.userRepo.FindById(ctx, request.HRID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	// Tickets only go to an active HR within the employee's own company.
	if hr == nil || hr.Role != db_models.RoleHR || !hr.IsActive {
		return nil, utils.ErrValidation
	}
	if employee.CompanyID == nil || hr.CompanyID == nil || *employee.CompanyID != *hr.CompanyID {
		return nil, utils.ErrValidation
	}

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, utils.ErrEmptyMessage
	}

	ticket := &db_models.Request{
		TypeID:     requestType.ID,
		EmployeeID: employee.ID,
		HRID:       hr.ID,
		Status:     db_models.RequestStatusOpen,
	}
	message := &db_models.RequestMessage{
		SenderID: employee.ID,
		Text:     text,
	}

	if err := s.requestRepo.CreateWithMessage(ctx, ticket, message); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.Detail(ctx, employeeID, ticket.ID.String())
}

func (s *RequestService) ListForEmployee(ctx context.Context, employeeID string) ([]response_models.RequestListItem, error) {
	id, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}

	requests, err := s.requestRepo.ListForEmployee(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.mapList(ctx, requests, func(r *db_models.Request) *db_models.User { return &r.HR })
}

func (s *RequestService) ListForHR(ctx context.Context, hrID string) ([]response_models.RequestListItem, error) {
	id, err := uuid.Parse(hrID)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}

	requests, err := s.requestRepo.ListForHR(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return s.mapList(ctx, requests, func(r *db_models.Request) *db_models.User { return &r.Employee })
}

func (s *RequestService) Detail(ctx context.Context, callerID, requestID string) (*response_models.RequestDetail, error) {
	request, err := s.ownedRequestDetail(ctx, callerID, requestID)
	if err != nil {
		return nil, err
	}
	return mapRequestDetail(request), nil
}

func (s *RequestService) SendMessage(ctx context.Context, senderID, requestID, text string, attachment []byte, attachmentExt string) (*response_models.RequestDetail, error) {
	request, err := s.ownedRequest(ctx, senderID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == db_models.RequestStatusClosed {
		return nil, utils.ErrRequestClosed
	}

	text = strings.TrimSpace(text)
	if text == "" && len(attachment) == 0 {
		return nil, utils.ErrEmptyMessage
	}

	sender, err := uuid.Parse(senderID)
	if err != nil {
		return nil, utils.ErrUserNotFound
	}

	message := &db_models.RequestMessage{
		RequestID: request.ID,
		SenderID:  sender,
		Text:      text,
	}
	if len(attachment) > 0 {
		path, err := s.fileStore.Save("request_files", attachmentExt, attachment)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		message.FilePath = path
	}

	if err := s.requestRepo.AddMessage(ctx, message); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.Detail(ctx, senderID, requestID)
}

func (s *RequestService) UpdateStatus(ctx context.Context, hrID, requestID, status string) (*response_models.RequestDetail, error) {
	request, err := s.ownedRequest(ctx, hrID, requestID)
	if err != nil {
		return nil, err
	}
	if request.HRID.String() != hrID {
		return nil, utils.ErrRequestNotFound
	}
	if request.Status == db_models.RequestStatusClosed {
		return nil, utils.ErrRequestClosed
	}

	// The only manual transition is taking an open ticket into work;
	// closing goes through Close so the timestamp is always recorded.
	if db_models.RequestStatus(status) != db_models.RequestStatusInProgress {
		return nil, utils.ErrValidation
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, db_models.RequestStatusInProgress, nil); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.Detail(ctx, hrID, requestID)
}

func (s *RequestService) Close(ctx context.Context, hrID, requestID string) (*response_models.RequestDetail, error) {
	request, err := s.ownedRequest(ctx, hrID, requestID)
	if err != nil {
		return nil, err
	}
	if request.HRID.String() != hrID {
		return nil, utils.ErrRequestNotFound
	}
	if request.Status == db_models.RequestStatusClosed {
		return nil, utils.ErrRequestClosed
	}

	closedAt := utils.NowUnixSeconds()
	if err := s.requestRepo.UpdateStatus(ctx, requestID, db_models.RequestStatusClosed, &closedAt); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.Detail(ctx, hrID, requestID)
}

// ownedRequest loads a ticket and hides it from anyone who is not a party
// to it; foreign tickets read as not-found.
func (s *RequestService) ownedRequest(ctx context.Context, callerID, requestID string) (*db_models.Request, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, utils.ErrRequestNotFound
	}

	request, err := s.requestRepo.FindById(ctx, requestID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if request == nil {
		return nil, utils.ErrRequestNotFound
	}
	if request.EmployeeID.String() != callerID && request.HRID.String() != callerID {
		return nil, utils.ErrRequestNotFound
	}
	return request, nil
}

func (s *RequestService) ownedRequestDetail(ctx context.Context, callerID, requestID string) (*db_models.Request, error) {
	if _, err := s.ownedRequest(ctx, callerID, requestID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.FindDetailById(ctx, requestID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if request == nil {
		return nil, utils.ErrRequestNotFound
	}
	return request, nil
}

func (s *RequestService) mapList(ctx context.Context, requests []db_models.Request, counterpart func(*db_models.Request) *db_models.User) ([]response_models.RequestListItem, error) {
	ids := make([]uuid.UUID, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].ID)
	}

	aggregates, err := s.requestRepo.MessageAggregates(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RequestListItem, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		agg := aggregates[r.ID]
		out = append(out, response_models.RequestListItem{
			ID:            r.ID.String(),
			Type:          r.Type.Name,
			Status:        string(r.Status),
			CreatedAt:     utils.FormatRFC3339(r.CreatedAt),
			ClosedAt:      utils.FormatRFC3339Ptr(r.ClosedAt),
			Counterpart:   mapRequestParty(counterpart(r)),
			MessagesCount: agg.MessagesCount,
			LastMessageAt: utils.FormatRFC3339Ptr(agg.LastMessageAt),
		})
	}
	return out, nil
}

func mapRequestParty(u *db_models.User) response_models.RequestParty {
	return response_models.RequestParty{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
	}
}

func mapRequestDetail(r *db_models.Request) *response_models.RequestDetail {
	messages := make([]response_models.RequestMessageResponse, 0, len(r.Messages))
	for i := range r.Messages {
		m := &r.Messages[i]
		messages = append(messages, response_models.RequestMessageResponse{
			ID:        m.ID.String(),
			Sender:    mapRequestParty(&m.Sender),
			Text:      m.Text,
			FilePath:  m.FilePath,
			CreatedAt: utils.FormatRFC3339(m.CreatedAt),
		})
	}

	return &response_models.RequestDetail{
		ID:        r.ID.String(),
		Type:      r.Type.Name,
		Status:    string(r.Status),
		CreatedAt: utils.FormatRFC3339(r.CreatedAt),
		ClosedAt:  utils.FormatRFC3339Ptr(r.ClosedAt),
		Employee:  mapRequestParty(&r.Employee),
		HR:        mapRequestParty(&r.HR),
		Messages:  messages,
	}
}
