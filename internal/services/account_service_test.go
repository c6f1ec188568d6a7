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
	mem "pulse/pkg/memcache"
	"pulse/pkg/utils"
)

func accountFixture(t *testing.T) (*mockUserRepo, *mockCompanyRepo, AccountServiceInterface) {
	t.Helper()
	userRepo := &mockUserRepo{}
	companyRepo := &mockCompanyRepo{}
	svc := NewAccountService(userRepo, companyRepo, testFileStore(t), mem.NewRefreshTokens())
	return userRepo, companyRepo, svc
}

func activeUser(t *testing.T, password string) *db_models.User {
	t.Helper()
	user := testUser(db_models.RoleEmployee)
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	user.PasswordHash = hash
	return user
}

func TestRegisterNormalizesUsername(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	userRepo.On("FindByUsername", mock.Anything, "newhire").Return(nil, nil)

	// InsertTx copies the created row into reloaded, which the service then
	// reads back through FindById.
	reloaded := &db_models.User{}
	userRepo.On("InsertTx", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created := args.Get(0).(*db_models.User)
			created.ID = uuid.New()
			*reloaded = *created
		}).
		Return(nil)
	userRepo.On("FindById", mock.Anything, mock.Anything).Return(reloaded, nil)

	resp, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Username: "  NewHire  ",
		Password: "secret123",
		Name:     "New Hire",
	}, testPNG(t), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, "newhire", reloaded.Username)
	assert.Equal(t, db_models.RoleEmployee, reloaded.Role)
	assert.NotEmpty(t, reloaded.PhotoPath)
	assert.NotEmpty(t, resp.Access)
	assert.NotEmpty(t, resp.Refresh)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	userRepo.On("FindByUsername", mock.Anything, "taken").Return(testUser(db_models.RoleEmployee), nil)

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Username: "taken",
		Password: "secret123",
	}, testPNG(t), "photo.png")
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestRegisterRejectsDepartmentOutsideCompany(t *testing.T) {
	userRepo, companyRepo, svc := accountFixture(t)

	company := &db_models.Company{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Acme"}
	department := &db_models.Department{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Ops", CompanyID: uuid.New()}

	userRepo.On("FindByUsername", mock.Anything, mock.Anything).Return(nil, nil)
	companyRepo.On("FindCompanyById", mock.Anything, company.ID.String()).Return(company, nil)
	companyRepo.On("FindDepartmentById", mock.Anything, department.ID.String()).Return(department, nil)

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Username:     "newhire",
		Password:     "secret123",
		CompanyID:    company.ID.String(),
		DepartmentID: department.ID.String(),
	}, testPNG(t), "photo.png")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestRegisterRejectsBadPhoto(t *testing.T) {
	userRepo, _, svc := accountFixture(t)
	userRepo.On("FindByUsername", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{
		Username: "newhire",
		Password: "secret123",
	}, []byte("not an image"), "resume.doc")
	assert.ErrorIs(t, err, utils.ErrInvalidImage)
	userRepo.AssertNotCalled(t, "InsertTx", mock.Anything, mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	user := activeUser(t, "right-password")
	userRepo.On("FindByUsername", mock.Anything, user.Username).Return(user, nil)

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: user.Username,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	user := activeUser(t, "secret123")
	user.IsActive = false
	userRepo.On("FindByUsername", mock.Anything, user.Username).Return(user, nil)

	_, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: user.Username,
		Password: "secret123",
	})
	assert.ErrorIs(t, err, utils.ErrUserInactive)
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	user := activeUser(t, "secret123")
	userRepo.On("FindByUsername", mock.Anything, user.Username).Return(user, nil)
	userRepo.On("FindById", mock.Anything, user.ID.String()).Return(user, nil)

	loggedIn, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: user.Username,
		Password: "secret123",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), loggedIn.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.Access)
	assert.NotEqual(t, loggedIn.Refresh, rotated.Refresh)

	// the consumed token cannot be replayed
	_, err = svc.Refresh(context.Background(), loggedIn.Refresh)
	assert.ErrorIs(t, err, utils.ErrInvalidRefresh)
}

func TestRefreshReplayRevokesTheFamily(t *testing.T) {
	userRepo, _, svc := accountFixture(t)

	user := activeUser(t, "secret123")
	userRepo.On("FindByUsername", mock.Anything, user.Username).Return(user, nil)
	userRepo.On("FindById", mock.Anything, user.ID.String()).Return(user, nil)

	loggedIn, err := svc.Login(context.Background(), request_models.LoginRequest{
		Username: user.Username,
		Password: "secret123",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), loggedIn.Refresh)
	require.NoError(t, err)

	// replaying the rotated-out token kills every live refresh token,
	// the freshly issued one included
	_, err = svc.Refresh(context.Background(), loggedIn.Refresh)
	assert.ErrorIs(t, err, utils.ErrInvalidRefresh)

	_, err = svc.Refresh(context.Background(), rotated.Refresh)
	assert.ErrorIs(t, err, utils.ErrInvalidRefresh)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	_, _, svc := accountFixture(t)

	user := activeUser(t, "secret123")
	access, err := utils.CreateAccessToken(user.ID, string(user.Role))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, utils.ErrInvalidRefresh)
}

func TestListCompaniesMapsCatalog(t *testing.T) {
	_, companyRepo, svc := accountFixture(t)

	companyRepo.On("ListCompanies", mock.Anything).Return([]db_models.Company{
		{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Acme"},
		{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Globex"},
	}, nil)

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.NotEmpty(t, companies[0].ID)
}

func TestListDepartmentsFiltersByCompany(t *testing.T) {
	_, companyRepo, svc := accountFixture(t)

	companyID := uuid.New()
	companyRepo.On("ListDepartments", mock.Anything, companyID.String()).Return([]db_models.Department{
		{
			BaseModel: db_models.BaseModel{ID: uuid.New()},
			Name:      "Support",
			CompanyID: companyID,
			Company:   db_models.Company{Name: "Acme"},
		},
	}, nil)

	departments, err := svc.ListDepartments(context.Background(), companyID.String())
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.Equal(t, "Support", departments[0].Name)
	assert.Equal(t, companyID.String(), departments[0].CompanyID)
	assert.Equal(t, "Acme", departments[0].CompanyName)
}

func TestListDepartmentsRejectsBadCompanyID(t *testing.T) {
	_, companyRepo, svc := accountFixture(t)

	_, err := svc.ListDepartments(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrValidation)
	companyRepo.AssertNotCalled(t, "ListDepartments", mock.Anything, mock.Anything)
}
