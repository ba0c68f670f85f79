package routes

import (
	"time"

	"salon-wellness-backend/config"
	"salon-wellness-backend/controllers"
	"salon-wellness-backend/events"
	"salon-wellness-backend/middleware"
	"salon-wellness-backend/monitoring"
	"salon-wellness-backend/store"
	"salon-wellness-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const eventsPath = "/api/events"

// Dependencies are the long-lived objects the handlers share.
type Dependencies struct {
	Config      *config.Config
	Store       *store.Store
	Cache       utils.RedisClient // nil when Redis is not configured
	Broadcaster *events.Broadcaster
	Journal     *events.Journal // nil without a journal database
	Now         func() time.Time
}

func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	r.Use(gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedPaths([]string{eventsPath})))
	r.Use(config.PerformanceLogger(cfg.Server.SlowRequest))
	r.Use(middleware.PrometheusMetrics(eventsPath))
	r.Use(middleware.SentryMiddleware())
	r.Use(middleware.ErrorHandler())

	health := &controllers.HealthController{Store: deps.Store}
	r.GET("/health", health.Health)
	r.GET("/metrics", gin.WrapH(monitoring.Handler()))

	salon := cfg.Salon.Settings()

	authController := &controllers.AuthController{Auth: cfg.Auth, Staff: cfg.Salon.Staff, Now: now}
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/me", utils.AuthMiddleware(cfg.Auth.JWTSecret), authController.Me)
	}

	api := r.Group("/api")
	if cfg.Auth.Enabled {
		api.Use(utils.AuthMiddleware(cfg.Auth.JWTSecret))
	}
	{
		clientController := &controllers.ClientController{Store: deps.Store, Now: now}
		clients := api.Group("/clients")
		{
			clients.GET("", clientController.GetClients)
			clients.POST("", clientController.CreateClient)
			clients.GET("/:id", clientController.GetClient)
		}

		sessionController := &controllers.SessionController{Store: deps.Store}
		exportController := &controllers.ExportController{Store: deps.Store, Now: now}
		sessions := api.Group("/sessions")
		{
			sessions.GET("", sessionController.GetSessions)
			sessions.POST("", sessionController.CreateSession)
			sessions.GET("/export", exportController.ExportSessions)
		}

		intakeController := controllers.NewIntakeController(deps.Store, salon, cfg.Salon.StaffSelection)
		intakeController.Now = now
		intake := api.Group("/intake")
		{
			intake.POST("", intakeController.StartIntake)
			intake.GET("/:id", intakeController.GetIntake)
			intake.PUT("/:id", intakeController.UpdateIntake)
			intake.DELETE("/:id", intakeController.DiscardIntake)
			intake.POST("/:id/next", intakeController.NextStep)
			intake.POST("/:id/back", intakeController.PreviousStep)
			intake.POST("/:id/submit", intakeController.SubmitIntake)
		}

		dashboardController := &controllers.DashboardController{Store: deps.Store, Cache: deps.Cache, TTL: cfg.Redis.TTL}
		api.GET("/dashboard", dashboardController.GetDashboardOverview)

		reportController := &controllers.ReportController{Store: deps.Store, Cache: deps.Cache, TTL: cfg.Redis.TTL, Now: now}
		api.GET("/reports", reportController.GetReportAnalytics)

		settingsController := &controllers.SettingsController{Settings: salon}
		api.GET("/settings", settingsController.GetSettings)

		if deps.Broadcaster != nil {
			eventsController := &controllers.EventsController{Broadcaster: deps.Broadcaster, Heartbeat: cfg.Events.Heartbeat}
			api.GET("/events", eventsController.Stream)
		}
		if deps.Journal != nil {
			journalController := &controllers.JournalController{Journal: deps.Journal}
			api.GET("/journal", journalController.GetJournal)
		}
	}

	return r
}
