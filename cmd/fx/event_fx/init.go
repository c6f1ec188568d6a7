package event_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/repositories"
	"pulse/internal/services"
)

var Module = fx.Provide(
	provideEventRepo, provideEventService, provideEventController)

func provideEventRepo(db *gorm.DB) repositories.EventRepository {
	return repositories.NewEventRepository(db)
}

func provideEventService(
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	feedbackRepo repositories.FeedbackRepositoryInterface,
) services.EventServiceInterface {
	return services.NewEventService(eventRepo, userRepo, feedbackRepo)
}

func provideEventController(eventService services.EventServiceInterface) *controllers.EventController {
	return controllers.NewEventController(eventService)
}
