package request_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/infra"
	"pulse/internal/repositories"
	"pulse/internal/services"
)

var Module = fx.Provide(
	provideRequestRepo, provideRequestService, provideRequestController)

func provideRequestRepo(db *gorm.DB) repositories.RequestRepository {
	return repositories.NewRequestRepository(db)
}

func provideRequestService(
	requestRepo repositories.RequestRepository,
	userRepo repositories.UserRepository,
	fileStore *infra.FileStore,
) services.RequestServiceInterface {
	return services.NewRequestService(requestRepo, userRepo, fileStore)
}

func provideRequestController(requestService services.RequestServiceInterface) *controllers.RequestController {
	return controllers.NewRequestController(requestService)
}
