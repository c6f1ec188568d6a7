package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pulse/internal/infra"
	"pulse/internal/models/db_models"
	"pulse/internal/models/request_models"
	"pulse/internal/models/response_models"
	"pulse/internal/repositories"
	"pulse/pkg/imagenorm"
	mem "pulse/pkg/memcache"
	"pulse/pkg/utils"
)

const refreshTTL = time.Hour * 24 * 7

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest, photo []byte, photoName string) (*response_models.RegisterResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.RegisterResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPairResponse, error)
	Me(ctx context.Context, userID string) (*response_models.MeResponse, error)
	ListEmployees(ctx context.Context, hrUserID string) ([]response_models.EmployeeResponse, error)

	// Public catalogs for the registration form.
	ListCompanies(ctx context.Context) ([]response_models.CompanyResponse, error)
	ListDepartments(ctx context.Context, companyID string) ([]response_models.DepartmentResponse, error)
}

type AccountService struct {
	userRepo    repositories.UserRepository
	companyRepo repositories.CompanyRepository
	fileStore   *infra.FileStore
	refreshMem  mem.RefreshTokenStore
}

func NewAccountService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	fileStore *infra.FileStore,
	refreshMem mem.RefreshTokenStore,
) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		fileStore:   fileStore,
		refreshMem:  refreshMem,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest, photo []byte, photoName string) (*response_models.RegisterResponse, error) {
	username := strings.ToLower(strings.TrimSpace(request.Username))
	if username == "" {
		return nil, utils.ErrValidation
	}

	existing, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	var companyID, departmentID *uuid.UUID
	if request.CompanyID != "" {
		company, err := a.companyRepo.FindCompanyById(ctx, request.CompanyID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if company == nil {
			return nil, utils.ErrCompanyNotFound
		}
		companyID = &company.ID
	}
	if request.DepartmentID != "" {
		department, err := a.companyRepo.FindDepartmentById(ctx, request.DepartmentID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if department == nil {
			return nil, utils.ErrDepartmentNotFound
		}
		if companyID == nil || department.CompanyID != *companyID {
			return nil, utils.ErrValidation
		}
		departmentID = &department.ID
	}

	// The reference photo is normalized the same way analysis uploads are,
	// so later authorization calls compare like with like.
	img, err := imagenorm.Normalize(photo, photoName)
	if err != nil {
		return nil, utils.ErrInvalidImage
	}
	photoPath, err := a.fileStore.Save("photos", ".jpg", img.Data)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newUser := &db_models.User{
		Username:     username,
		Name:         request.Name,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleEmployee,
		PhotoPath:    photoPath,
		IsActive:     true,
		CompanyID:    companyID,
		DepartmentID: departmentID,
	}

	if err := a.userRepo.InsertTx(newUser, ctx); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return a.tokenResponse(ctx, newUser.ID.String())
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.RegisterResponse, error) {
	username := strings.ToLower(strings.TrimSpace(request.Username))

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, utils.ErrUserInactive
	}

	return a.tokenResponse(ctx, user.ID.String())
}

// Refresh rotates the pair: the presented refresh token is single-use and a
// fresh one is issued alongside the new access token.
func (a *AccountService) Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPairResponse, error) {
	claims, err := utils.ValidateToken(refreshToken)
	if err != nil || claims.Kind != "refresh" {
		return nil, utils.ErrInvalidRefresh
	}

	userID := a.refreshMem.Consume(claims.ID)
	if userID == "" || userID != claims.UserID {
		// A validly signed token that is no longer in the store was already
		// rotated out. Someone is replaying an old copy, so every live
		// refresh token for that user is revoked too.
		a.refreshMem.RevokeUser(claims.UserID)
		return nil, utils.ErrInvalidRefresh
	}

	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrInvalidRefresh
	}

	return a.makeTokenPair(user)
}

func (a *AccountService) Me(ctx context.Context, userID string) (*response_models.MeResponse, error) {
	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	me := mapMe(user)
	return &me, nil
}

func (a *AccountService) ListEmployees(ctx context.Context, hrUserID string) ([]response_models.EmployeeResponse, error) {
	hr, err := a.userRepo.FindById(ctx, hrUserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if hr == nil {
		return nil, utils.ErrUserNotFound
	}
	if hr.CompanyID == nil {
		return []response_models.EmployeeResponse{}, nil
	}

	employees, err := a.userRepo.ListByCompanyAndRole(ctx, *hr.CompanyID, db_models.RoleEmployee, false)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		item := response_models.EmployeeResponse{
			ID:       e.ID.String(),
			Username: e.Username,
			Name:     e.Name,
		}
		if e.Department != nil {
			item.DepartmentName = &e.Department.Name
		}
		out = append(out, item)
	}
	return out, nil
}

func (a *AccountService) ListCompanies(ctx context.Context) ([]response_models.CompanyResponse, error) {
	companies, err := a.companyRepo.ListCompanies(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, response_models.CompanyResponse{
			ID:   c.ID.String(),
			Name: c.Name,
		})
	}
	return out, nil
}

func (a *AccountService) ListDepartments(ctx context.Context, companyID string) ([]response_models.DepartmentResponse, error) {
	if companyID != "" {
		if _, err := uuid.Parse(companyID); err != nil {
			return nil, utils.ErrValidation
		}
	}

	departments, err := a.companyRepo.ListDepartments(ctx, companyID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, response_models.DepartmentResponse{
			ID:          d.ID.String(),
			Name:        d.Name,
			CompanyID:   d.CompanyID.String(),
			CompanyName: d.Company.Name,
		})
	}
	return out, nil
}

func (a *AccountService) tokenResponse(ctx context.Context, userID string) (*response_models.RegisterResponse, error) {
	user, err := a.userRepo.FindById(ctx, userID)
	if err != nil || user == nil {
		return nil, utils.ErrDatabaseError
	}

	pair, err := a.makeTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &response_models.RegisterResponse{
		TokenPairResponse: *pair,
		User:              mapMe(user),
	}, nil
}

func (a *AccountService) makeTokenPair(user *db_models.User) (*response_models.TokenPairResponse, error) {
	access, err := utils.CreateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	refresh, jti, err := utils.CreateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	a.refreshMem.Set(jti, user.ID.String(), refreshTTL)

	return &response_models.TokenPairResponse{
		Access:  access,
		Refresh: refresh,
	}, nil
}

func mapMe(user *db_models.User) response_models.MeResponse {
	me := response_models.MeResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Name:     user.Name,
		Role:     string(user.Role),
	}
	if user.CompanyID != nil {
		id := user.CompanyID.String()
		me.CompanyID = &id
	}
	if user.Company != nil {
		me.CompanyName = &user.Company.Name
	}
	if user.DepartmentID != nil {
		id := user.DepartmentID.String()
		me.DepartmentID = &id
	}
	if user.Department != nil {
		me.DepartmentName = &user.Department.Name
	}
	return me
}
