package api

import (
	"net/http"

	"musclemania/gym-catalog/internal/domain"
	"musclemania/gym-catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Auth       service.AuthService
	Catalog    service.CatalogService
	Workout    service.WorkoutService
	Generation service.GenerationService
}

// SetupRoutes registers every endpoint. Metrics is optional.
func SetupRoutes(router *gin.Engine, services Services, metrics http.Handler) {
	authHandler := NewAuthHandler(services.Auth)
	catalogHandler := NewCatalogHandler(services.Catalog)
	workoutHandler := NewWorkoutHandler(services.Workout)
	generateHandler := NewGenerateHandler(services.Generation)

	authMiddleware := AuthMiddleware(services.Auth)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		// The catalog is public to read.
		apiV1.GET("/categories", catalogHandler.ListCategories)
		apiV1.GET("/categories/:id", catalogHandler.GetCategory)
		apiV1.GET("/equipment", catalogHandler.ListEquipment)
		apiV1.GET("/equipment/:id", catalogHandler.GetEquipment)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Workout log ---
		protected.POST("/workouts", workoutHandler.SaveWorkout)
		protected.GET("/workouts", workoutHandler.ListWorkouts)
		protected.GET("/equipment/:id/history", workoutHandler.MachineHistory)

		// --- Admin: catalog management ---
		admin := protected.Group("")
		admin.Use(adminOnly)
		{
			admin.POST("/categories", catalogHandler.CreateCategory)
			admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
			admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

			admin.POST("/equipment", catalogHandler.CreateEquipment)
			admin.PUT("/equipment/:id", catalogHandler.UpdateEquipment)
			admin.DELETE("/equipment/:id", catalogHandler.DeleteEquipment)

			generate := admin.Group("/generate")
			{
				generate.POST("/equipment-info", generateHandler.EquipmentInfo)
				generate.POST("/equipment-image", generateHandler.EquipmentImage)
				generate.POST("/image-prompt", generateHandler.ImagePrompt)
			}
		}
	}
}
