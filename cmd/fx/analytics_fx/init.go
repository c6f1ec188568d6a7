package analytics_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/repositories"
	"pulse/internal/services"
)

var Module = fx.Provide(
	provideAnalyticsRepo, provideAnalyticsService, provideAnalyticsController)

func provideAnalyticsRepo(db *gorm.DB) repositories.AnalyticsRepository {
	return repositories.NewAnalyticsRepository(db)
}

func provideAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	userRepo repositories.UserRepository,
) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(analyticsRepo, userRepo)
}

func provideAnalyticsController(analyticsService services.AnalyticsServiceInterface) *controllers.AnalyticsController {
	return controllers.NewAnalyticsController(analyticsService)
}
