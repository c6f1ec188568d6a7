package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/infra"
	"pulse/internal/repositories"
	"pulse/internal/services"
	mem "pulse/pkg/memcache"
)

var Module = fx.Provide(
	provideUserRepo, provideCompanyRepo, provideRefreshTokenStore,
	provideAccountService, provideAccountController)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideCompanyRepo(db *gorm.DB) repositories.CompanyRepository {
	return repositories.NewCompanyRepository(db)
}

func provideRefreshTokenStore() mem.RefreshTokenStore {
	return mem.NewRefreshTokens()
}

func provideAccountService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyRepository,
	fileStore *infra.FileStore,
	refreshMem mem.RefreshTokenStore,
) services.AccountServiceInterface {
	return services.NewAccountService(userRepo, companyRepo, fileStore, refreshMem)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}
