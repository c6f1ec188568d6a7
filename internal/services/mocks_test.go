package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pulse/internal/infra"
	"pulse/internal/models/db_models"
	"pulse/internal/repositories"
	"pulse/pkg/aigateway"
	"pulse/pkg/worker"
)

// ---------- test helpers ----------

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func testFileStore(t *testing.T) *infra.FileStore {
	t.Helper()
	store, err := infra.NewFileStore(&infra.Config{PhotoDir: t.TempDir()})
	require.NoError(t, err)
	return store
}

func testUser(role db_models.UserRole) *db_models.User {
	companyID := uuid.New()
	departmentID := uuid.New()
	return &db_models.User{
		BaseModel:    db_models.BaseModel{ID: uuid.New()},
		Username:     "someone",
		Name:         "Someone",
		Role:         role,
		IsActive:     true,
		CompanyID:    &companyID,
		DepartmentID: &departmentID,
		Department:   &db_models.Department{BaseModel: db_models.BaseModel{ID: departmentID}, Name: "Support", CompanyID: companyID},
	}
}

// ---------- repository mocks ----------

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) InsertTx(user *db_models.User, ctx context.Context) error {
	return m.Called(user, ctx).Error(0)
}

func (m *mockUserRepo) FindById(ctx context.Context, id string) (*db_models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*db_models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*db_models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*db_models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) ListByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role db_models.UserRole, activeOnly bool) ([]db_models.User, error) {
	args := m.Called(ctx, companyID, role, activeOnly)
	users, _ := args.Get(0).([]db_models.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) FindManyByIds(ctx context.Context, ids []uuid.UUID) ([]db_models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]db_models.User)
	return users, args.Error(1)
}

type mockCompanyRepo struct{ mock.Mock }

func (m *mockCompanyRepo) FindCompanyById(ctx context.Context, id string) (*db_models.Company, error) {
	args := m.Called(ctx, id)
	company, _ := args.Get(0).(*db_models.Company)
	return company, args.Error(1)
}

func (m *mockCompanyRepo) FindDepartmentById(ctx context.Context, id string) (*db_models.Department, error) {
	args := m.Called(ctx, id)
	department, _ := args.Get(0).(*db_models.Department)
	return department, args.Error(1)
}

func (m *mockCompanyRepo) ListCompanies(ctx context.Context) ([]db_models.Company, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]db_models.Company)
	return companies, args.Error(1)
}

func (m *mockCompanyRepo) ListDepartments(ctx context.Context, companyID string) ([]db_models.Department, error) {
	args := m.Called(ctx, companyID)
	departments, _ := args.Get(0).([]db_models.Department)
	return departments, args.Error(1)
}

type mockFeedbackRepo struct{ mock.Mock }

func (m *mockFeedbackRepo) CreateFeedback(ctx context.Context, feedback *db_models.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *mockFeedbackRepo) ExistsForUserEvent(ctx context.Context, userID, eventID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFeedbackRepo) ListFeedbackForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Feedback, error) {
	args := m.Called(ctx, userID, page, pageSize)
	feedbacks, _ := args.Get(0).([]db_models.Feedback)
	return feedbacks, args.Error(1)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) CreateEvent(ctx context.Context, event *db_models.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventRepo) FindEventById(ctx context.Context, id string) (*db_models.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*db_models.Event)
	return event, args.Error(1)
}

func (m *mockEventRepo) UpdateEvent(ctx context.Context, event *db_models.Event, participants []db_models.User) error {
	return m.Called(ctx, event, participants).Error(0)
}

func (m *mockEventRepo) DeleteEvent(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEventRepo) ListEventsByCompany(ctx context.Context, companyID uuid.UUID) ([]db_models.Event, error) {
	args := m.Called(ctx, companyID)
	events, _ := args.Get(0).([]db_models.Event)
	return events, args.Error(1)
}

func (m *mockEventRepo) ListActiveEventsForUser(ctx context.Context, companyID, userID uuid.UUID, now int64) ([]db_models.Event, error) {
	args := m.Called(ctx, companyID, userID, now)
	events, _ := args.Get(0).([]db_models.Event)
	return events, args.Error(1)
}

func (m *mockEventRepo) IsParticipant(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) ListTypes(ctx context.Context) ([]db_models.RequestType, error) {
	args := m.Called(ctx)
	types, _ := args.Get(0).([]db_models.RequestType)
	return types, args.Error(1)
}

func (m *mockRequestRepo) FindTypeById(ctx context.Context, id string) (*db_models.RequestType, error) {
	args := m.Called(ctx, id)
	requestType, _ := args.Get(0).(*db_models.RequestType)
	return requestType, args.Error(1)
}

func (m *mockRequestRepo) CreateWithMessage(ctx context.Context, request *db_models.Request, message *db_models.RequestMessage) error {
	return m.Called(ctx, request, message).Error(0)
}

func (m *mockRequestRepo) FindById(ctx context.Context, id string) (*db_models.Request, error) {
	args := m.Called(ctx, id)
	request, _ := args.Get(0).(*db_models.Request)
	return request, args.Error(1)
}

func (m *mockRequestRepo) FindDetailById(ctx context.Context, id string) (*db_models.Request, error) {
	args := m.Called(ctx, id)
	request, _ := args.Get(0).(*db_models.Request)
	return request, args.Error(1)
}

func (m *mockRequestRepo) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]db_models.Request, error) {
	args := m.Called(ctx, employeeID)
	requests, _ := args.Get(0).([]db_models.Request)
	return requests, args.Error(1)
}

func (m *mockRequestRepo) ListForHR(ctx context.Context, hrID uuid.UUID) ([]db_models.Request, error) {
	args := m.Called(ctx, hrID)
	requests, _ := args.Get(0).([]db_models.Request)
	return requests, args.Error(1)
}

func (m *mockRequestRepo) MessageAggregates(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID]repositories.MessageAggregate, error) {
	args := m.Called(ctx, requestIDs)
	aggregates, _ := args.Get(0).(map[uuid.UUID]repositories.MessageAggregate)
	return aggregates, args.Error(1)
}

func (m *mockRequestRepo) AddMessage(ctx context.Context, message *db_models.RequestMessage) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, id string, status db_models.RequestStatus, closedAt *int64) error {
	return m.Called(ctx, id, status, closedAt).Error(0)
}

type mockAnalyticsRepo struct{ mock.Mock }

func (m *mockAnalyticsRepo) CountAndAverage(ctx context.Context, f repositories.FeedbackFilters) (int64, float64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func (m *mockAnalyticsRepo) EmotionCounts(ctx context.Context, f repositories.FeedbackFilters) ([]repositories.EmotionCountRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]repositories.EmotionCountRow)
	return rows, args.Error(1)
}

func (m *mockAnalyticsRepo) TimelineCounts(ctx context.Context, f repositories.FeedbackFilters, interval string) ([]repositories.TimelineRow, error) {
	args := m.Called(ctx, f, interval)
	rows, _ := args.Get(0).([]repositories.TimelineRow)
	return rows, args.Error(1)
}

func (m *mockAnalyticsRepo) UserTotals(ctx context.Context, f repositories.FeedbackFilters, limit int) ([]repositories.UserTotalRow, error) {
	args := m.Called(ctx, f, limit)
	rows, _ := args.Get(0).([]repositories.UserTotalRow)
	return rows, args.Error(1)
}

func (m *mockAnalyticsRepo) TopEmotionForUser(ctx context.Context, f repositories.FeedbackFilters, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, f, userID)
	return args.String(0), args.Error(1)
}

// ---------- gateway and worker mocks ----------

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Predict(ctx context.Context, file aigateway.Part) (*aigateway.Prediction, error) {
	args := m.Called(ctx, file)
	prediction, _ := args.Get(0).(*aigateway.Prediction)
	return prediction, args.Error(1)
}

func (m *mockGateway) Authorize(ctx context.Context, photo1, photo2 aigateway.Part) (*aigateway.Authorization, error) {
	args := m.Called(ctx, photo1, photo2)
	authorization, _ := args.Get(0).(*aigateway.Authorization)
	return authorization, args.Error(1)
}

type mockEnqueuer struct{ mock.Mock }

func (m *mockEnqueuer) Enqueue(task worker.FeedbackTask) bool {
	return m.Called(task).Bool(0)
}
