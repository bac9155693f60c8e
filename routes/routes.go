package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/eval-survey-server/controllers"
	"github.com/vnkhanh/eval-survey-server/middleware"
)

func SetupRoutes(r *gin.Engine, createLimiter *middleware.IPRateLimiter) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		surveys := api.Group("/surveys")
		{
			// Tạo mới: bắt buộc JWT admin, giới hạn theo IP
			create := surveys.Group("", middleware.AuthJWT(), middleware.RequireAdmin(), middleware.RateLimitByIP(createLimiter))
			create.POST("", controllers.CreateSurvey)
			create.POST("/:id/clone", controllers.CloneSurvey)
		}

		open := surveys.Group("", middleware.OptionalAuth())
		{
			open.GET("", controllers.ListSurveys)
			open.GET("/:id", controllers.GetSurvey)

			// Ghi: cần quyền editor (JWT admin hoặc Edit Token)
			open.PUT("/:id", middleware.CheckSurveyEditor(), controllers.UpdateSurvey)
			open.DELETE("/:id", middleware.CheckSurveyEditor(), controllers.DeleteSurvey)
			open.PUT("/:id/archive", middleware.CheckSurveyEditor(), controllers.ArchiveSurvey)
			open.PUT("/:id/restore", middleware.CheckSurveyEditor(), controllers.RestoreSurvey)
		}
	}
}
