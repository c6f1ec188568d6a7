package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"pulse/cmd/fx/account_fx"
	"pulse/cmd/fx/analytics_fx"
	"pulse/cmd/fx/db_fx"
	"pulse/cmd/fx/event_fx"
	"pulse/cmd/fx/feedback_fx"
	"pulse/cmd/fx/request_fx"
	"pulse/internal/api/controllers"
	"pulse/internal/infra"
	"pulse/internal/models/db_models"
	"pulse/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		feedback_fx.Module,
		event_fx.Module,
		analytics_fx.Module,
		request_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *infra.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	feedbackController *controllers.FeedbackController,
	eventController *controllers.EventController,
	analyticsController *controllers.AnalyticsController,
	requestController *controllers.RequestController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, feedbackController, eventController, analyticsController, requestController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	feedbackController *controllers.FeedbackController,
	eventController *controllers.EventController,
	analyticsController *controllers.AnalyticsController,
	requestController *controllers.RequestController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)
	authGroup.POST("/refresh", accountController.Refresh)

	// public catalogs for the registration form
	r.GET("/companies", accountController.ListCompanies)
	r.GET("/departments", accountController.ListDepartments)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.GET("/me", accountController.Me)
	authed.POST("/photo-login", feedbackController.PhotoLogin)

	employeeGroup := r.Group("/employee")
	employeeGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(string(db_models.RoleEmployee)))
	employeeGroup.GET("/events", eventController.ListActiveEvents)
	employeeGroup.GET("/stats", analyticsController.MyStats)
	employeeGroup.GET("/feedback", feedbackController.ListMyFeedback)
	employeeGroup.POST("/feedback", feedbackController.CreateFeedback)
	employeeGroup.GET("/hrs", requestController.ListHRs)
	employeeGroup.GET("/request-types", requestController.ListTypes)
	employeeGroup.GET("/requests", requestController.ListMine)
	employeeGroup.POST("/requests", requestController.CreateRequest)
	employeeGroup.GET("/requests/:id", requestController.Detail)
	employeeGroup.POST("/requests/:id/messages", requestController.SendMessage)

	hrGroup := r.Group("/hr")
	hrGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(string(db_models.RoleHR)))
	hrGroup.GET("/analytics/feedbacks", analyticsController.Overview)
	hrGroup.GET("/analytics/timeline", analyticsController.Timeline)
	hrGroup.GET("/analytics/by-user", analyticsController.ByUser)
	hrGroup.GET("/employees", accountController.ListEmployees)
	hrGroup.GET("/events", eventController.ListCompanyEvents)
	hrGroup.POST("/events", eventController.CreateEvent)
	hrGroup.GET("/events/:id", eventController.GetEvent)
	hrGroup.PUT("/events/:id", eventController.UpdateEvent)
	hrGroup.DELETE("/events/:id", eventController.DeleteEvent)
	hrGroup.GET("/requests", requestController.ListAssigned)
	hrGroup.GET("/requests/:id", requestController.Detail)
	hrGroup.POST("/requests/:id/messages", requestController.SendMessage)
	hrGroup.PATCH("/requests/:id/status", requestController.UpdateStatus)
	hrGroup.POST("/requests/:id/close", requestController.Close)
}
