package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/eval-survey-server/config"
	"github.com/vnkhanh/eval-survey-server/logger"
	"github.com/vnkhanh/eval-survey-server/middleware"
	"github.com/vnkhanh/eval-survey-server/routes"
)

func main() {
	settings := config.Load()
	logger.SetLevel(settings.LogLevel)
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Kết nối DB + AutoMigrate
	config.ConnectDB(settings)

	r := gin.Default()

	origins := map[string]bool{}
	for _, o := range settings.CORSOrigins {
		origins[o] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return origins[origin] },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderEditToken},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderEditToken},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Survey server is running")
	})

	if err := r.SetTrustedProxies(nil); err != nil {
		panic(err)
	}

	limiter := middleware.NewIPRateLimiter(settings.CreatePerMinute, settings.CreateBurst, 5*time.Minute)
	defer limiter.Close()
	routes.SetupRoutes(r, limiter)

	logger.Infof("Server listening on port %s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
