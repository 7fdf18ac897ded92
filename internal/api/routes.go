package api

import (
	"net/http"

	"alcyxob/fittrack/internal/metrics"
	"alcyxob/fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	gatherer prometheus.Gatherer,
	metricsManager *metrics.Manager,
	authService service.AuthService,
	userService service.UserService,
	logService service.LogService,
	templateService service.TemplateService,
	notificationService service.NotificationService,
	insightsService service.InsightsService,
) {
	authHandler := NewAuthHandler(authService, userService)
	logHandler := NewLogHandler(logService)
	exerciseHandler := NewExerciseHandler(logService)
	templateHandler := NewTemplateHandler(templateService)
	notificationHandler := NewNotificationHandler(notificationService)
	insightsHandler := NewInsightsHandler(insightsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestLogger(metricsManager))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)
		protected.PUT("/me/preferences", authHandler.UpdatePreferences)

		mealGroup := protected.Group("/meals")
		{
			mealGroup.POST("", logHandler.CreateMeal)
			mealGroup.GET("", logHandler.ListMeals)
			mealGroup.PUT("/:id", logHandler.UpdateMeal)
			mealGroup.DELETE("/:id", logHandler.DeleteMeal)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", logHandler.CreateWorkout)
			workoutGroup.GET("", logHandler.ListWorkouts)
			workoutGroup.DELETE("/:id", logHandler.DeleteWorkout)
		}

		weightGroup := protected.Group("/body-weights")
		{
			weightGroup.POST("", logHandler.CreateBodyWeight)
			weightGroup.GET("", logHandler.ListBodyWeights)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/estimate", exerciseHandler.EstimateCalories)
			exerciseGroup.GET("/:name", exerciseHandler.GetExercise)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)
			templateGroup.POST("/:id/log", templateHandler.LogTemplate)
		}

		notificationGroup := protected.Group("/notifications")
		{
			notificationGroup.GET("", notificationHandler.ListNotifications)
			notificationGroup.GET("/unread-count", notificationHandler.UnreadCount)
			notificationGroup.POST("/check", notificationHandler.CheckNotifications)
			notificationGroup.DELETE("", notificationHandler.DeleteNotifications)
			notificationGroup.GET("/:id", notificationHandler.GetNotification)
			notificationGroup.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		insightsGroup := protected.Group("/insights")
		{
			insightsGroup.GET("/metrics", insightsHandler.GetMetrics)
			insightsGroup.GET("/trends", insightsHandler.GetTrends)
		}
	}
}
