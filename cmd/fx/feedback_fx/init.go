package feedback_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"pulse/internal/api/controllers"
	"pulse/internal/infra"
	"pulse/internal/repositories"
	"pulse/internal/services"
	"pulse/pkg/aigateway"
	"pulse/pkg/worker"
)

var Module = fx.Options(
	fx.Provide(
		provideFeedbackRepo, provideGateway,
		provideFeedbackService, provideFeedbackQueue, provideEnqueuer,
		provideFaceLoginService, provideFeedbackController),
	fx.Invoke(runFeedbackQueue),
)

func provideFeedbackRepo(db *gorm.DB) repositories.FeedbackRepositoryInterface {
	return repositories.NewFeedbackRepository(db)
}

func provideGateway(cfg *infra.Config) (aigateway.GatewayInterface, error) {
	return aigateway.NewClient(aigateway.Config{
		BaseURL:          cfg.AIBaseURL,
		PredictTimeout:   cfg.AIPredictTimeout,
		AuthorizeTimeout: cfg.AIAuthorizeTimeout,
	})
}

func provideFeedbackService(
	feedbackRepo repositories.FeedbackRepositoryInterface,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	gateway aigateway.GatewayInterface,
) services.FeedbackServiceInterface {
	return services.NewFeedbackService(feedbackRepo, eventRepo, userRepo, gateway)
}

// The deferred photo-login feedback runs through the same recorder the
// synchronous endpoint uses, just without an event attached.
func provideFeedbackQueue(feedbackService services.FeedbackServiceInterface) *worker.FeedbackQueue {
	return worker.NewFeedbackQueue(func(ctx context.Context, task worker.FeedbackTask) error {
		_, err := feedbackService.AnalyzeAndRecord(ctx, task.UserID, task.Image, nil)
		return err
	}, 0)
}

func provideEnqueuer(queue *worker.FeedbackQueue) worker.Enqueuer {
	return queue
}

func provideFaceLoginService(
	userRepo repositories.UserRepository,
	fileStore *infra.FileStore,
	gateway aigateway.GatewayInterface,
	queue worker.Enqueuer,
) services.FaceLoginServiceInterface {
	return services.NewFaceLoginService(userRepo, fileStore, gateway, queue)
}

func provideFeedbackController(
	feedbackService services.FeedbackServiceInterface,
	faceLoginService services.FaceLoginServiceInterface,
) *controllers.FeedbackController {
	return controllers.NewFeedbackController(feedbackService, faceLoginService)
}

func runFeedbackQueue(lc fx.Lifecycle, queue *worker.FeedbackQueue) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			queue.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			queue.Stop()
			return nil
		},
	})
}
